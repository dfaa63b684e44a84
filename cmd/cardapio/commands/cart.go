package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cardapio/internal/cart"
	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
)

func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart of the current restaurant",
	}
	cmd.AddCommand(cartAddCmd(), cartRemoveCmd(), cartShowCmd(), cartClearCmd())
	return cmd
}

func cartAddCmd() *cobra.Command {
	var addOnIDs []int64
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product, optionally choosing add-ons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			username, err := currentRestaurant(ctx)
			if err != nil {
				return err
			}
			menu, err := wire.Catalog.Load(ctx, username)
			if err != nil {
				return err
			}
			product, ok := menu.Product(domain.ProductID(id))
			if !ok {
				return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("product %d is not on the menu", id))
			}

			sel := cart.NewSelection(product)
			for _, raw := range addOnIDs {
				addOn, ok := product.AddOn(domain.AddOnID(raw))
				if !ok {
					addOn = domain.AddOn{ID: domain.AddOnID(raw)}
				}
				if err := sel.Select(addOn); err != nil {
					return apperrors.Wrap(apperrors.CodeValidation, err,
						fmt.Sprintf("add-on %d: %s (max %d)", raw, err, product.MaxAddOns))
				}
			}

			var line cart.Line
			c, err := wire.EditCart(ctx, username, func(c *cart.Cart) error {
				var addErr error
				line, addErr = sel.AddTo(c)
				return addErr
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s (now %dx)\n", line.Product.Name, line.Quantity)
			printCart(out, c)
			return nil
		},
	}
	cmd.Flags().Int64SliceVar(&addOnIDs, "addon", nil, "add-on id to include (repeatable)")
	return cmd
}

func cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			username, err := currentRestaurant(ctx)
			if err != nil {
				return err
			}
			c, err := wire.EditCart(ctx, username, func(c *cart.Cart) error {
				c.Remove(domain.ProductID(id))
				return nil
			})
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart and its total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username, err := currentRestaurant(ctx)
			if err != nil {
				return err
			}
			c, err := wire.Carts.Load(ctx, username)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username, err := currentRestaurant(ctx)
			if err != nil {
				return err
			}
			if _, err := wire.EditCart(ctx, username, func(c *cart.Cart) error {
				c.Clear()
				return nil
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared")
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}
