package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gastoctl/gastoctl/internal/model"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account on the server",
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

func runRegister(_ *cobra.Command, _ []string) error {
	cfg := activeConfig()
	sess := openSession()
	client := newClient(cfg, sess)

	var username, email, password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre de usuario").
				Value(&username),
			huh.NewInput().
				Title("Correo electrónico").
				Placeholder("tu@email.com").
				Value(&email),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if errs := model.ValidateRegistration(username, email, password); !errs.Ok() {
		for _, field := range []string{"username", "email", "password"} {
			if msg, ok := errs[field]; ok {
				return errors.New(msg)
			}
		}
	}

	user, err := client.Register(context.Background(), username, email, password)
	if err != nil {
		return friendly(err)
	}

	fmt.Printf("  Usuario %s registrado. Inicia sesión con `gastoctl login -e %s`.\n", user.Username, user.Email)
	return nil
}
