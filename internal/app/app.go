package app

import (
	"context"

	"cardapio/internal/cart"
	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
)

// Restaurant resolves which restaurant a command acts on: the explicit
// username when given, else the one saved by the last menu load.
func (w *Wire) Restaurant(ctx context.Context, username domain.Username) (domain.Username, error) {
	if username != "" {
		return username, nil
	}
	ref, ok, err := w.Session.Restaurant(ctx)
	if err != nil {
		return "", err
	}
	if !ok || ref.Username == "" {
		return "", apperrors.New(apperrors.CodeNotFound, "no restaurant selected; pass --restaurant or run menu first")
	}
	return ref.Username, nil
}

// EditCart loads the saved cart of restaurant, applies fn and saves the
// result. Nothing is saved when fn fails.
func (w *Wire) EditCart(ctx context.Context, restaurant domain.Username, fn func(*cart.Cart) error) (*cart.Cart, error) {
	c, err := w.Carts.Load(ctx, restaurant)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return c, err
	}
	if err := w.Carts.Save(ctx, restaurant, c); err != nil {
		return nil, err
	}
	return c, nil
}

// PlaceOrder checks out the saved cart of restaurant. Once the service has
// accepted the order it is reported as placed even if the emptied cart cannot
// be saved; that failure is only logged, so a retry cannot submit it twice.
func (w *Wire) PlaceOrder(ctx context.Context, restaurant domain.Username, note string) (domain.Order, error) {
	c, err := w.Carts.Load(ctx, restaurant)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := w.Checkout(c).Checkout(ctx, note)
	if err != nil {
		return domain.Order{}, err
	}
	if err := w.Carts.Save(ctx, restaurant, c); err != nil {
		ctx = w.Log.WithFields(ctx, map[string]any{
			"order_id": int64(order.ID),
			"error":    err.Error(),
		})
		w.Log.Warn(ctx, "order placed but the saved cart could not be cleared; run 'cart clear' before ordering again")
	}
	return order, nil
}
