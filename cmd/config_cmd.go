// Package cmd implements the gastoctl CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gastoctl/gastoctl/internal/config"
	"github.com/gastoctl/gastoctl/internal/session"
	"github.com/gastoctl/gastoctl/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [API]")
	fmt.Printf("    Base URL: %s\n", config.BaseURL(cfg))
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency: %s\n", cfg.General.Currency)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	sess := session.Open(session.DefaultPath())
	fmt.Println("  [Session]")
	if u := sess.User(); u != nil {
		fmt.Printf("    Logged in as: %s (%s)\n", u.Username, u.Email)
	} else {
		fmt.Println("    Not logged in")
	}
	fmt.Printf("    Token file:   %s\n", session.DefaultPath())
	fmt.Printf("    Snapshot:     %s\n", store.DefaultPath())
	fmt.Println()

	fmt.Println("  Run `gastoctl setup` to reconfigure.")
	return nil
}
