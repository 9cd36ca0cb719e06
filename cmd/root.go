package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gastoctl/gastoctl/internal/api"
	"github.com/gastoctl/gastoctl/internal/config"
	"github.com/gastoctl/gastoctl/internal/session"
)

var (
	flagAPIURL string
	flagYes    bool
)

var rootCmd = &cobra.Command{
	Use:   "gastoctl",
	Short: "GastoControl terminal client",
	Long:  "Track budgets and expenses against a GastoControl server from the terminal.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompts")
}

// activeConfig loads the config file and applies the --api override.
func activeConfig() config.Config {
	cfg, _ := config.Load()
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}
	return cfg
}

// openSession hydrates the persisted session; never fails, a broken
// token slot just means logged out.
func openSession() *session.Store {
	return session.Open(session.DefaultPath())
}

func newClient(cfg config.Config, sess *session.Store) *api.Client {
	return api.NewClient(config.BaseURL(cfg), sess)
}

// requireSession gates commands that hit protected endpoints.
func requireSession(sess *session.Store) error {
	if !sess.LoggedIn() {
		return errors.New("no has iniciado sesión. Ejecuta `gastoctl login`")
	}
	return nil
}

// friendly rewrites API errors for terminal output. Server payloads pass
// through verbatim; a 401 tells the user to log in again.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return errors.New("tu sesión expiró. Inicia sesión nuevamente con `gastoctl login`")
	}
	if errors.Is(err, api.ErrNotFound) {
		return errors.New("no encontrado")
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Error())
	}
	return fmt.Errorf("error de conexión: %w", err)
}
