package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cardapio/internal/domain"
	"cardapio/internal/services/catalog"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu [username]",
		Short: "Show a restaurant's menu",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username, err := usernameArg(cmd, args)
			if err != nil {
				return err
			}
			menu, err := wire.Catalog.Load(ctx, username)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  (%s)\n", menu.Restaurant.Name, openLabel(menu.Restaurant, time.Now()))
			for _, c := range menu.Categories {
				fmt.Fprintf(out, "\n== %s ==\n", c.Name)
				for _, p := range c.Products {
					fmt.Fprintf(out, "[%d] %s  %s\n", p.ID, p.Name, money(p.Price))
					if p.Description != nil && *p.Description != "" {
						fmt.Fprintf(out, "     %s\n", *p.Description)
					}
					if len(p.AddOns) > 0 && p.MaxAddOns > 0 {
						fmt.Fprintf(out, "     up to %d add-ons:\n", p.MaxAddOns)
						printAddOns(out, "     ", p.AddOns)
					}
				}
			}
			return nil
		},
	}
}

func restaurantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restaurant [username]",
		Short: "Show the restaurant profile and opening hours",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := usernameArg(cmd, args)
			if err != nil {
				return err
			}
			r, err := wire.API.FetchRestaurant(cmd.Context(), username)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  (%s)\n", r.Name, openLabel(r, time.Now()))
			a := r.Address
			fmt.Fprintf(out, "%s, %s - %s, %s %s\n", a.Street, a.Number, a.Neighborhood, a.City, a.PostalCode)
			if r.PhoneNumber != "" {
				fmt.Fprintf(out, "Phone: %s\n", r.PhoneNumber)
			}
			if u := wire.API.RestaurantImageURL(r); u != "" {
				fmt.Fprintf(out, "Logo: %s\n", u)
			}
			if u := wire.API.RestaurantBannerURL(r); u != "" {
				fmt.Fprintf(out, "Banner: %s\n", u)
			}
			for _, h := range r.OperatingHours {
				fmt.Fprintf(out, "  %-9s %s - %s\n", h.DayOfWeek, h.OpeningTime, h.ClosingTime)
			}
			return nil
		},
	}
}

// usernameArg picks the restaurant from the argument, the --restaurant flag
// or the session, in that order.
func usernameArg(cmd *cobra.Command, args []string) (domain.Username, error) {
	if len(args) == 1 {
		return domain.Username(args[0]), nil
	}
	return currentRestaurant(cmd.Context())
}

func openLabel(r domain.Restaurant, now time.Time) string {
	h, ok := catalog.Today(r, now)
	if !ok {
		return "closed today"
	}
	if catalog.IsOpen(r, now) {
		return fmt.Sprintf("open until %s", h.ClosingTime)
	}
	return fmt.Sprintf("closed, today %s - %s", h.OpeningTime, h.ClosingTime)
}
