package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/services/orders"
)

type fakeOrderAPI struct {
	calls  int
	orders []domain.Order
	err    error
}

func (f *fakeOrderAPI) CreateOrder(context.Context, domain.OrderSubmission) (domain.Order, error) {
	return domain.Order{}, nil
}

func (f *fakeOrderAPI) FetchOrders(_ context.Context, _ domain.ClientID) ([]domain.Order, error) {
	f.calls++
	return f.orders, f.err
}

type clientSource struct {
	client domain.Client
	ok     bool
}

func (c clientSource) CurrentClient(context.Context) (domain.Client, bool, error) {
	return c.client, c.ok, nil
}

func TestHistory_RequiresClient(t *testing.T) {
	api := &fakeOrderAPI{}
	_, err := orders.New(api, clientSource{}, nil).History(context.Background())

	assert.Equal(t, apperrors.CodeNotAuthenticated, apperrors.CodeOf(err))
	assert.Zero(t, api.calls)
}

func TestHistory_ReturnsOrders(t *testing.T) {
	api := &fakeOrderAPI{orders: []domain.Order{{ID: 1}, {ID: 2}}}
	got, err := orders.New(api, clientSource{client: domain.Client{ID: 4}, ok: true}, nil).History(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestHistory_MalformedIsEmpty(t *testing.T) {
	api := &fakeOrderAPI{err: apperrors.New(apperrors.CodeMalformedResponse, "decode response body")}
	got, err := orders.New(api, clientSource{client: domain.Client{ID: 4}, ok: true}, nil).History(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHistory_ServerErrorSurfaces(t *testing.T) {
	api := &fakeOrderAPI{err: apperrors.New(apperrors.CodeServer, "boom").WithStatus(500)}
	_, err := orders.New(api, clientSource{client: domain.Client{ID: 4}, ok: true}, nil).History(context.Background())

	assert.Equal(t, apperrors.CodeServer, apperrors.CodeOf(err))
}
