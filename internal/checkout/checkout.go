// Package checkout turns the cart into a submitted order.
//
// An Orchestrator moves through Idle, Validating, Submitting and then
// Succeeded or Failed. Validation failures never reach the network. The cart
// is cleared only after the service accepts the order; on failure it is left
// exactly as it was.
package checkout

import (
	"context"
	"sync"

	"cardapio/internal/cart"
	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/logger"
)

// State is a phase of a checkout attempt.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type sessionSource interface {
	domain.ClientSource
	domain.RestaurantSource
}

// Orchestrator submits the cart it was built with. At most one checkout runs
// at a time.
type Orchestrator struct {
	api     domain.OrderAPI
	session sessionSource
	cart    *cart.Cart
	log     *logger.Logger

	mu       sync.Mutex
	state    State
	lastErr  error
	inFlight bool
}

// New returns an idle orchestrator for c.
func New(api domain.OrderAPI, session sessionSource, c *cart.Cart, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Nop()
	}
	return &Orchestrator{api: api, session: session, cart: c, log: log}
}

// State reports the phase of the most recent checkout.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastError is the failure of the most recent checkout, nil unless Failed.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Checkout validates and submits the cart with note as the order observations.
// A call made while another is pending fails with CHECKOUT_IN_PROGRESS and
// leaves the state of the pending one alone.
func (o *Orchestrator) Checkout(ctx context.Context, note string) (domain.Order, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return domain.Order{}, apperrors.New(apperrors.CodeCheckoutInProgress, "an order is already being submitted")
	}
	o.inFlight = true
	o.state = Validating
	o.lastErr = nil
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	client, ok, err := o.session.CurrentClient(ctx)
	if err != nil {
		return domain.Order{}, o.fail(ctx, err)
	}
	if !ok {
		return domain.Order{}, o.fail(ctx, apperrors.New(apperrors.CodeNotAuthenticated, "log in before placing an order"))
	}
	ctx = o.log.WithClientID(ctx, int64(client.ID))

	if o.cart.IsEmpty() {
		return domain.Order{}, o.fail(ctx, apperrors.New(apperrors.CodeEmptyCart, "add something to the cart first"))
	}

	var restaurantID *domain.RestaurantID
	ref, ok, err := o.session.Restaurant(ctx)
	if err != nil {
		return domain.Order{}, o.fail(ctx, err)
	}
	if ok && ref.ID != 0 {
		id := ref.ID
		restaurantID = &id
		ctx = o.log.WithRestaurant(ctx, string(ref.Username))
	}

	submission := BuildSubmission(o.cart.Snapshot(), client.ID, restaurantID, note)
	o.setState(Submitting)
	o.log.Debug(o.log.WithField(ctx, "items", len(submission.Items)), "submitting order")

	order, err := o.api.CreateOrder(ctx, submission)
	if err != nil {
		return domain.Order{}, o.fail(ctx, apperrors.Wrap(apperrors.CodeOrderSubmission, err, causeMessage(err)))
	}

	o.cart.Clear()
	o.setState(Succeeded)
	o.log.Info(o.log.WithField(ctx, "order_id", int64(order.ID)), "order placed")
	return order, nil
}

// BuildSubmission projects cart lines onto the order payload. Prices are the
// unit prices captured when each product was added; every add-on is sent
// with quantity 1.
func BuildSubmission(
	c *cart.Cart,
	client domain.ClientID,
	restaurant *domain.RestaurantID,
	note string,
) domain.OrderSubmission {
	lines := c.Lines()
	sub := domain.OrderSubmission{
		RestaurantID: restaurant,
		ClientID:     client,
		Observations: note,
		Status:       domain.OrderStatusPending,
		Items:        make([]domain.OrderItemSubmission, len(lines)),
	}
	for i, l := range lines {
		item := domain.OrderItemSubmission{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
			AddOns:    make([]domain.OrderAddOnSubmission, len(l.AddOns)),
		}
		for j, a := range l.AddOns {
			item.AddOns[j] = domain.OrderAddOnSubmission{AddOnID: a.ID, Quantity: 1}
		}
		sub.Items[i] = item
	}
	return sub
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) fail(ctx context.Context, err error) error {
	o.mu.Lock()
	o.state = Failed
	o.lastErr = err
	o.mu.Unlock()
	o.log.Warn(o.log.WithFields(ctx, map[string]any{
		"error": err.Error(),
		"code":  string(apperrors.CodeOf(err)),
	}), "checkout failed")
	return err
}

func causeMessage(err error) string {
	if typed := apperrors.As(err); typed != nil && typed.Message() != "" {
		return typed.Message()
	}
	return err.Error()
}
