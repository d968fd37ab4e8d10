package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCartCmd(app **App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	cmd.AddCommand(newCartShowCmd(app))
	cmd.AddCommand(newCartAddCmd(app))
	cmd.AddCommand(newCartSetCmd(app))
	cmd.AddCommand(newCartRemoveCmd(app))
	cmd.AddCommand(newCartClearCmd(app))

	return cmd
}

func newCartShowCmd(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cart contents and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*app).Cart.Fetch(cmd.Context()); err != nil {
				return err
			}
			state := (*app).Cart.State()
			out := cmd.OutOrStdout()
			if len(state.Items) == 0 {
				fmt.Fprintln(out, "Your cart is empty.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tQTY")
			for _, item := range state.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					item.Book.ID, item.Book.Title, item.Book.Price.StringFixed(2), item.Quantity)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			totals := state.Totals()
			fmt.Fprintf(out, "\nItems: %d\n", totals.TotalItems)
			fmt.Fprintf(out, "Subtotal: %s\n", totals.Subtotal.StringFixed(2))
			fmt.Fprintf(out, "Shipping: %s\n", totals.Shipping.StringFixed(2))
			fmt.Fprintf(out, "Total: %s\n", totals.TotalPrice.StringFixed(2))
			return nil
		},
	}
}

func newCartAddCmd(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <book-id>",
		Short: "Add one copy of a book to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := (*app).Books.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := (*app).Cart.Fetch(cmd.Context()); err != nil {
				return err
			}
			return (*app).Cart.Add(cmd.Context(), book)
		},
	}
}

func newCartSetCmd(app **App) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "set <book-id>",
		Short: "Set the quantity of a cart line; zero removes it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*app).Cart.Fetch(cmd.Context()); err != nil {
				return err
			}
			return (*app).Cart.SetQuantity(cmd.Context(), args[0], quantity)
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "New quantity for the line")

	return cmd
}

func newCartRemoveCmd(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <book-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*app).Cart.Fetch(cmd.Context()); err != nil {
				return err
			}
			return (*app).Cart.Remove(cmd.Context(), args[0])
		},
	}
}

func newCartClearCmd(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*app).Cart.Clear(cmd.Context())
		},
	}
}
