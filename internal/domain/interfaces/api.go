package interfaces

import (
	"context"

	domaintypes "cardapio/internal/domain/types"
)

// CatalogAPI reads the public menu and restaurant profile.
type CatalogAPI interface {
	FetchCategories(ctx context.Context, username domaintypes.Username) ([]domaintypes.Category, error)
	FetchRestaurant(ctx context.Context, username domaintypes.Username) (domaintypes.Restaurant, error)
}

// ClientAPI authenticates and registers end customers.
type ClientAPI interface {
	Login(
		ctx context.Context,
		username domaintypes.Username,
		credentials domaintypes.Credentials,
	) (domaintypes.Client, error)
	Register(
		ctx context.Context,
		registration domaintypes.Registration,
		restaurant domaintypes.RestaurantID,
	) (domaintypes.Client, error)
}

// OrderAPI creates orders and lists a client's history.
type OrderAPI interface {
	CreateOrder(ctx context.Context, submission domaintypes.OrderSubmission) (domaintypes.Order, error)
	FetchOrders(ctx context.Context, client domaintypes.ClientID) ([]domaintypes.Order, error)
}

// RestaurantAPI is the full surface of the external REST API.
type RestaurantAPI interface {
	CatalogAPI
	ClientAPI
	OrderAPI
}
