package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardapio/internal/domain"
)

func loginCmd() *cobra.Command {
	var creds domain.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a client of the current restaurant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username, err := currentRestaurant(ctx)
			if err != nil {
				return err
			}
			c, err := wire.Session.Login(ctx, username, creds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", c.Name, c.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	return cmd
}

func registerCmd() *cobra.Command {
	var reg domain.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a client account at the restaurant of the last menu loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.Session.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s <%s>. Run login to continue.\n", c.Name, c.Email)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&reg.Name, "name", "", "full name")
	f.StringVar(&reg.Email, "email", "", "email")
	f.StringVar(&reg.Password, "password", "", "password (at least 4 characters)")
	f.StringVar(&reg.Address.Street, "street", "", "street")
	f.StringVar(&reg.Address.Number, "number", "", "street number")
	f.StringVar(&reg.Address.Neighborhood, "neighborhood", "", "neighborhood")
	f.StringVar(&reg.Address.City, "city", "", "city")
	f.StringVar(&reg.Address.PostalCode, "postal-code", "", "postal code")
	f.StringVar(&reg.Address.ReferencePoint, "reference", "", "reference point (optional)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the client session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged-in client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			c, ok, err := wire.Session.CurrentClient(ctx)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}
			fmt.Fprintf(out, "%s <%s> (client %d)\n", c.Name, c.Email, c.ID)
			if ref, ok, err := wire.Session.Restaurant(ctx); err == nil && ok {
				fmt.Fprintf(out, "Restaurant: %s (%s)\n", ref.Name, ref.Username)
			}
			return nil
		},
	}
}
