package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gastoctl/gastoctl/internal/model"
)

var flagEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the server and store the session",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&flagEmail, "email", "e", "", "Account email")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	cfg := activeConfig()
	sess := openSession()
	client := newClient(cfg, sess)

	email := strings.TrimSpace(flagEmail)
	if email == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("  Correo electrónico > ")
		line, _ := reader.ReadString('\n')
		email = strings.TrimSpace(line)
	}

	var password string
	prompt := huh.NewInput().
		Title("Contraseña").
		EchoMode(huh.EchoModePassword).
		Value(&password)
	if err := prompt.Run(); err != nil {
		return err
	}

	if errs := model.ValidateLogin(email, password); !errs.Ok() {
		for _, field := range []string{"email", "password"} {
			if msg, ok := errs[field]; ok {
				return errors.New(msg)
			}
		}
	}

	ok, msg := sess.Login(context.Background(), client, email, password)
	if !ok {
		return errors.New(msg)
	}

	if u := sess.User(); u != nil {
		fmt.Printf("  Sesión iniciada como %s.\n", u.Username)
	} else {
		fmt.Println("  Sesión iniciada.")
	}
	return nil
}
