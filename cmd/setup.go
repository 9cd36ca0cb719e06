package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gastoctl/gastoctl/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to gastoctl!")
	fmt.Println()

	// 1. Server URL
	fmt.Println("  1. GastoControl server URL")
	fmt.Printf("     Current: %s\n", cfg.API.BaseURL)
	fmt.Print("     > ")
	baseURL, _ := reader.ReadString('\n')
	baseURL = strings.TrimSpace(baseURL)
	if baseURL != "" {
		cfg.API.BaseURL = strings.TrimRight(baseURL, "/")
	}
	fmt.Println()

	// 2. Currency symbol
	fmt.Println("  2. Currency symbol")
	fmt.Println("     (1) S/ soles [default]")
	fmt.Println("     (2) $ dollars")
	fmt.Println("     (3) € euros")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "2":
		cfg.General.Currency = "$"
	case "3":
		cfg.General.Currency = "€"
	default:
		cfg.General.Currency = "S/"
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `gastoctl login` to authenticate, then `gastoctl` for the dashboard.")
	fmt.Println()

	return nil
}
