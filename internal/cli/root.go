package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the bookhaven command tree. The app graph is
// built once in PersistentPreRunE so every subcommand sees the same
// stores and a restored session.
func NewRootCmd() *cobra.Command {
	var app *App

	cmd := &cobra.Command{
		Use:           "bookhaven",
		Short:         "Command line client for the BookHaven store",
		Long:          "Browse the BookHaven catalog, manage your cart and hand off to checkout from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			built, err := NewApp()
			if err != nil {
				return err
			}
			built.Session.CheckAuth(cmd.Context())
			app = built
			return nil
		},
	}

	cmd.AddCommand(newLoginCmd(&app))
	cmd.AddCommand(newRegisterCmd(&app))
	cmd.AddCommand(newLogoutCmd(&app))
	cmd.AddCommand(newWhoamiCmd(&app))
	cmd.AddCommand(newBooksCmd(&app))
	cmd.AddCommand(newCartCmd(&app))
	cmd.AddCommand(newCheckoutCmd(&app))

	return cmd
}
