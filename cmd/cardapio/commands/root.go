package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cardapio/internal/app"
	"cardapio/internal/config"
	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/logger"
)

var (
	home       string
	apiURL     string
	restaurant string
	logLevel   string

	wire *app.Wire
)

func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", describe(err))
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cardapio",
		Short:         "Order from a restaurant's online menu",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if apiURL != "" {
				cfg.API.BaseURL = apiURL
			}
			if home != "" {
				cfg.Session.Home = home
			}
			if logLevel != "" {
				cfg.App.LogLevel = logLevel
			}
			if restaurant == "" {
				restaurant = cfg.Restaurant.Username
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logg := logger.New(logger.Options{
				ServiceName: "cardapio",
				Level:       logger.ParseLevel(cfg.App.LogLevel),
				WarnStack:   cfg.App.LogWarnStack,
				Format:      cfg.App.LogFormat,
				Output:      cmd.ErrOrStderr(),
			})

			wire, err = app.NewWire(cmd.Context(), app.FromSettings(cfg, logg))
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir for the file backend (default ~/.cardapio)")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "restaurant service base URL (default $CARDAPIO_API_BASE_URL)")
	root.PersistentFlags().StringVarP(&restaurant, "restaurant", "r", "", "restaurant username (default: last menu loaded)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		menuCmd(),
		restaurantCmd(),
		registerCmd(),
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		cartCmd(),
		checkoutCmd(),
		ordersCmd(),
	)
	root.SetContext(context.Background())
	return root
}

// currentRestaurant is the --restaurant flag, falling back to the session.
func currentRestaurant(ctx context.Context) (domain.Username, error) {
	return wire.Restaurant(ctx, domain.Username(strings.TrimSpace(restaurant)))
}

// describe renders err for the terminal: the coded message, with the HTTP
// status when the service answered.
func describe(err error) string {
	typed := apperrors.As(err)
	if typed == nil {
		return err.Error()
	}
	msg := typed.Message()
	if msg == "" {
		msg = apperrors.MetadataFor(typed.Code()).PublicMessage
	}
	switch typed.Code() {
	case apperrors.CodeNetwork:
		return apperrors.MetadataFor(typed.Code()).PublicMessage + ": " + msg
	case apperrors.CodeServer, apperrors.CodeOrderSubmission:
		if status := statusOf(err); status != 0 {
			return fmt.Sprintf("%s (HTTP %d)", msg, status)
		}
	}
	return msg
}

func statusOf(err error) int {
	for ; err != nil; err = errors.Unwrap(err) {
		if typed, ok := err.(*apperrors.Error); ok && typed.Status() != 0 {
			return typed.Status()
		}
	}
	return 0
}
