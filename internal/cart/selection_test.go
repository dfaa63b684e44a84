package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardapio/internal/cart"
	"cardapio/internal/domain"
)

func TestSelect_RespectsLimit(t *testing.T) {
	p := burger()
	s := cart.NewSelection(p)

	require.NoError(t, s.Select(p.AddOns[0]))
	require.NoError(t, s.Select(p.AddOns[1]))
	assert.True(t, s.LimitReached())

	err := s.Select(p.AddOns[2])
	assert.ErrorIs(t, err, cart.ErrAddOnLimit)
	assert.Len(t, s.Selected(), 2)
}

func TestSelect_AlreadyChosenIsNoop(t *testing.T) {
	p := burger()
	s := cart.NewSelection(p)

	require.NoError(t, s.Select(p.AddOns[0]))
	require.NoError(t, s.Select(p.AddOns[0]))
	assert.Len(t, s.Selected(), 1)
}

func TestSelect_RejectsForeignAddOn(t *testing.T) {
	s := cart.NewSelection(burger())

	err := s.Select(domain.AddOn{ID: 999, Name: "Caviar"})
	assert.ErrorIs(t, err, cart.ErrUnknownAddOn)
	assert.Empty(t, s.Selected())
}

func TestSelect_ZeroMaxAllowsNothing(t *testing.T) {
	p := burger()
	p.MaxAddOns = 0
	s := cart.NewSelection(p)

	assert.ErrorIs(t, s.Select(p.AddOns[0]), cart.ErrAddOnLimit)
}

func TestSelect_WithoutProduct(t *testing.T) {
	var s cart.Selection
	assert.ErrorIs(t, s.Select(domain.AddOn{ID: 1}), cart.ErrNoProduct)
	assert.True(t, s.LimitReached())

	_, err := s.AddTo(cart.New())
	assert.ErrorIs(t, err, cart.ErrNoProduct)
}

func TestDeselectAndToggle(t *testing.T) {
	p := burger()
	s := cart.NewSelection(p)

	s.Deselect(p.AddOns[0])
	assert.Empty(t, s.Selected())

	require.NoError(t, s.Toggle(p.AddOns[0]))
	require.NoError(t, s.Toggle(p.AddOns[1]))
	assert.True(t, s.LimitReached())

	require.NoError(t, s.Toggle(p.AddOns[0]))
	assert.Equal(t, []domain.AddOn{p.AddOns[1]}, s.Selected())
	assert.False(t, s.LimitReached())
}

func TestOpenDiscardsPreviousProductChoices(t *testing.T) {
	p := burger()
	s := cart.NewSelection(p)
	require.NoError(t, s.Select(p.AddOns[0]))

	s.Open(soda())
	assert.Empty(t, s.Selected())
	scoped, ok := s.Product()
	require.True(t, ok)
	assert.Equal(t, domain.ProductID(2), scoped.ID)

	s.Open(p)
	assert.Empty(t, s.Selected())
}

func TestAddToResetsSelection(t *testing.T) {
	p := burger()
	c := cart.New()
	s := cart.NewSelection(p)
	require.NoError(t, s.Select(p.AddOns[1]))

	line, err := s.AddTo(c)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
	assert.Len(t, line.AddOns, 1)
	assert.Empty(t, s.Selected())

	line, err = s.AddTo(c)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
	assert.Len(t, line.AddOns, 1, "empty re-add keeps the add-ons")
}
