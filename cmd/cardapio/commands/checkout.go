package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func checkoutCmd() *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place the cart as an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username, err := currentRestaurant(ctx)
			if err != nil {
				return err
			}

			order, err := wire.PlaceOrder(ctx, username, note)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Order placed!")
			printOrder(out, order)
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "observations for the kitchen")
	return cmd
}

func ordersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your past orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := wire.Orders.History(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No orders yet.")
				return nil
			}
			for _, o := range list {
				printOrder(out, o)
			}
			return nil
		},
	}
}
