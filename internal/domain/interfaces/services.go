package interfaces

import (
	"context"

	domaintypes "cardapio/internal/domain/types"
)

// ClientSource yields the currently authenticated client, if any.
type ClientSource interface {
	CurrentClient(ctx context.Context) (domaintypes.Client, bool, error)
}

// RestaurantSource yields the restaurant recorded by the last menu load.
type RestaurantSource interface {
	Restaurant(ctx context.Context) (domaintypes.RestaurantRef, bool, error)
}

// SessionService is the explicit session context shared by the commands.
type SessionService interface {
	ClientSource
	RestaurantSource
	Login(
		ctx context.Context,
		username domaintypes.Username,
		credentials domaintypes.Credentials,
	) (domaintypes.Client, error)
	Register(ctx context.Context, registration domaintypes.Registration) (domaintypes.Client, error)
	Logout(ctx context.Context) error
	SaveRestaurant(ctx context.Context, ref domaintypes.RestaurantRef) error
}

// OrderHistoryService lists the current client's past orders.
type OrderHistoryService interface {
	History(ctx context.Context) ([]domaintypes.Order, error)
}
