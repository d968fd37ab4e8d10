package cli

import (
	"github.com/spf13/cobra"
)

func newCheckoutCmd(app **App) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Hand the cart off to the payment flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			if confirm {
				return (*app).Checkout.ConfirmSuccess(cmd.Context())
			}
			if err := (*app).Cart.Fetch(cmd.Context()); err != nil {
				return err
			}
			return (*app).Checkout.Begin(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Report a completed payment and empty the cart")

	return cmd
}
