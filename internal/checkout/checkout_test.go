package checkout_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardapio/internal/api"
	"cardapio/internal/cart"
	"cardapio/internal/checkout"
	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/mockapi"
	"cardapio/internal/services/catalog"
	"cardapio/internal/services/session"
	"cardapio/internal/store"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func burger() domain.Product {
	return domain.Product{
		ID:        11,
		Name:      "X-Burger",
		Price:     money("15.00"),
		MaxAddOns: 2,
		AddOns: []domain.AddOn{
			{ID: 201, Name: "Bacon", Price: money("3.00")},
			{ID: 202, Name: "Cheddar", Price: money("2.00")},
		},
	}
}

type fakeSession struct {
	client     domain.Client
	loggedIn   bool
	restaurant domain.RestaurantRef
}

func (f fakeSession) CurrentClient(context.Context) (domain.Client, bool, error) {
	return f.client, f.loggedIn, nil
}

func (f fakeSession) Restaurant(context.Context) (domain.RestaurantRef, bool, error) {
	return f.restaurant, f.restaurant.ID != 0, nil
}

type fakeOrderAPI struct {
	mu      sync.Mutex
	calls   int
	got     domain.OrderSubmission
	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeOrderAPI) CreateOrder(ctx context.Context, sub domain.OrderSubmission) (domain.Order, error) {
	f.mu.Lock()
	f.calls++
	f.got = sub
	f.mu.Unlock()
	if f.entered != nil {
		close(f.entered)
		<-f.release
	}
	if f.err != nil {
		return domain.Order{}, f.err
	}
	return domain.Order{ID: 55, Status: sub.Status}, nil
}

func (f *fakeOrderAPI) FetchOrders(context.Context, domain.ClientID) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func loggedIn() fakeSession {
	return fakeSession{
		client:     domain.Client{ID: 4},
		loggedIn:   true,
		restaurant: domain.RestaurantRef{ID: 1, Username: "burgerhouse"},
	}
}

func TestCheckout_NotAuthenticated(t *testing.T) {
	c := cart.New()
	c.AddOrIncrement(burger(), nil)
	orderAPI := &fakeOrderAPI{}
	o := checkout.New(orderAPI, fakeSession{}, c, nil)

	_, err := o.Checkout(context.Background(), "")

	assert.Equal(t, apperrors.CodeNotAuthenticated, apperrors.CodeOf(err))
	assert.Equal(t, checkout.Failed, o.State())
	assert.Equal(t, err, o.LastError())
	assert.Zero(t, orderAPI.callCount())
	assert.Equal(t, 1, c.Len())
}

func TestCheckout_EmptyCart(t *testing.T) {
	orderAPI := &fakeOrderAPI{}
	o := checkout.New(orderAPI, loggedIn(), cart.New(), nil)

	_, err := o.Checkout(context.Background(), "")

	assert.Equal(t, apperrors.CodeEmptyCart, apperrors.CodeOf(err))
	assert.Zero(t, orderAPI.callCount())
}

func TestCheckout_SuccessClearsCartAndBuildsPayload(t *testing.T) {
	c := cart.New()
	p := burger()
	c.AddOrIncrement(p, p.AddOns)
	c.AddOrIncrement(p, nil)
	orderAPI := &fakeOrderAPI{}
	o := checkout.New(orderAPI, loggedIn(), c, nil)
	assert.Equal(t, checkout.Idle, o.State())

	order, err := o.Checkout(context.Background(), "sem cebola")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderID(55), order.ID)
	assert.Equal(t, checkout.Succeeded, o.State())
	assert.NoError(t, o.LastError())
	assert.True(t, c.IsEmpty())

	sub := orderAPI.got
	assert.Equal(t, domain.ClientID(4), sub.ClientID)
	require.NotNil(t, sub.RestaurantID)
	assert.Equal(t, domain.RestaurantID(1), *sub.RestaurantID)
	assert.Equal(t, "sem cebola", sub.Observations)
	assert.Equal(t, domain.OrderStatusPending, sub.Status)
	require.Len(t, sub.Items, 1)
	assert.Equal(t, 2, sub.Items[0].Quantity)
	assert.True(t, money("15.00").Equal(sub.Items[0].Price))
	assert.Equal(t, []domain.OrderAddOnSubmission{
		{AddOnID: 201, Quantity: 1},
		{AddOnID: 202, Quantity: 1},
	}, sub.Items[0].AddOns)
}

func TestCheckout_WithoutRestaurantLeavesRestaurantIDUnset(t *testing.T) {
	c := cart.New()
	c.AddOrIncrement(burger(), nil)
	orderAPI := &fakeOrderAPI{}
	sess := loggedIn()
	sess.restaurant = domain.RestaurantRef{}

	_, err := checkout.New(orderAPI, sess, c, nil).Checkout(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, orderAPI.got.RestaurantID)
}

func TestCheckout_FailureLeavesCartUntouched(t *testing.T) {
	c := cart.New()
	c.AddOrIncrement(burger(), burger().AddOns[:1])
	before := c.Lines()
	orderAPI := &fakeOrderAPI{err: apperrors.New(apperrors.CodeServer, "kitchen closed").WithStatus(500)}
	o := checkout.New(orderAPI, loggedIn(), c, nil)

	_, err := o.Checkout(context.Background(), "")

	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeOrderSubmission, typed.Code())
	assert.Equal(t, "kitchen closed", typed.Message())
	assert.True(t, apperrors.Is(err, apperrors.CodeServer))
	assert.Equal(t, checkout.Failed, o.State())
	assert.Equal(t, before, c.Lines())
}

func TestCheckout_TransportFailureKeepsCause(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	c := cart.New()
	c.AddOrIncrement(burger(), burger().AddOns[:1])
	before := c.Lines()
	o := checkout.New(api.New(base, nil, nil), loggedIn(), c, nil)

	_, err := o.Checkout(context.Background(), "")

	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeOrderSubmission, typed.Code())
	assert.True(t, apperrors.Is(err, apperrors.CodeNetwork))
	assert.Contains(t, typed.Message(), "POST /order: ")
	assert.Contains(t, typed.Message(), base+"/order", "message carries the transport error")
	assert.Contains(t, err.Error(), base+"/order")
	assert.Equal(t, checkout.Failed, o.State())
	assert.Equal(t, before, c.Lines())
}

func TestCheckout_RejectsConcurrentSubmission(t *testing.T) {
	c := cart.New()
	c.AddOrIncrement(burger(), nil)
	orderAPI := &fakeOrderAPI{entered: make(chan struct{}), release: make(chan struct{})}
	o := checkout.New(orderAPI, loggedIn(), c, nil)

	done := make(chan error, 1)
	go func() {
		_, err := o.Checkout(context.Background(), "")
		done <- err
	}()
	<-orderAPI.entered
	assert.Equal(t, checkout.Submitting, o.State())

	_, err := o.Checkout(context.Background(), "")
	assert.Equal(t, apperrors.CodeCheckoutInProgress, apperrors.CodeOf(err))
	assert.Equal(t, checkout.Submitting, o.State(), "rejected call does not disturb the pending one")

	close(orderAPI.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, orderAPI.callCount())
	assert.Equal(t, checkout.Succeeded, o.State())

	orderAPI.entered = nil
	c.AddOrIncrement(burger(), nil)
	_, err = o.Checkout(context.Background(), "")
	assert.NotEqual(t, apperrors.CodeCheckoutInProgress, apperrors.CodeOf(err), "guard is released after completion")
}

func TestCheckout_EndToEndAgainstMockService(t *testing.T) {
	ctx := context.Background()
	srv := mockapi.New(nil)
	require.NoError(t, srv.Seed())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := api.New(ts.URL, ts.Client(), nil)
	sess := session.New(store.NewMemoryStore(), client, nil)
	menu, err := catalog.New(client, sess, nil).Load(ctx, mockapi.DemoUsername)
	require.NoError(t, err)
	_, err = sess.Login(ctx, mockapi.DemoUsername, domain.Credentials{Email: mockapi.DemoEmail, Password: mockapi.DemoPassword})
	require.NoError(t, err)

	p, ok := menu.Product(11)
	require.True(t, ok)
	sel := cart.NewSelection(p)
	require.NoError(t, sel.Select(p.AddOns[0]))
	require.NoError(t, sel.Select(p.AddOns[1]))
	assert.ErrorIs(t, sel.Select(p.AddOns[2]), cart.ErrAddOnLimit)

	c := cart.New()
	_, err = sel.AddTo(c)
	require.NoError(t, err)
	c.AddOrIncrement(p, nil)
	assert.True(t, money("35.00").Equal(c.Total()))

	srv.FailOnce("/order", http.StatusInternalServerError, "database down")
	o := checkout.New(client, sess, c, nil)
	_, err = o.Checkout(ctx, "")
	assert.Equal(t, apperrors.CodeOrderSubmission, apperrors.CodeOf(err))
	assert.Equal(t, "database down", apperrors.As(err).Message())
	assert.Equal(t, 1, c.Len())
	assert.Zero(t, srv.OrderCount())

	order, err := o.Checkout(ctx, "troco para 50")
	require.NoError(t, err)
	assert.True(t, money("35.00").Equal(order.Total))
	assert.True(t, c.IsEmpty())

	sent, ok := srv.LastOrder()
	require.True(t, ok)
	require.NotNil(t, sent.RestaurantID)
	assert.Equal(t, menu.Restaurant.ID, *sent.RestaurantID)
	assert.Equal(t, "troco para 50", sent.Observations)
}
