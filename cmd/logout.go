package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(_ *cobra.Command, _ []string) error {
	sess := openSession()
	if !sess.LoggedIn() {
		fmt.Println("  No había sesión activa.")
		return nil
	}
	sess.Logout()
	fmt.Println("  Sesión cerrada.")
	return nil
}
