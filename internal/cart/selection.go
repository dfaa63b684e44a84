package cart

import (
	"errors"
	"slices"

	"cardapio/internal/domain"
)

var (
	// ErrAddOnLimit is returned when the product's add-on maximum is already selected.
	ErrAddOnLimit = errors.New("add-on limit reached for this product")
	// ErrUnknownAddOn is returned for an add-on the product does not offer.
	ErrUnknownAddOn = errors.New("add-on not offered for this product")
	// ErrNoProduct is returned when selecting before a product was opened.
	ErrNoProduct = errors.New("no product opened for add-on selection")
)

// Selection tracks the add-ons checked for exactly one product. Opening a
// different product discards the previous choices.
type Selection struct {
	product *domain.Product
	chosen  []domain.AddOn
}

// NewSelection returns a selection scoped to product.
func NewSelection(product domain.Product) *Selection {
	s := &Selection{}
	s.Open(product)
	return s
}

// Open scopes the selection to product and clears any previous choices.
func (s *Selection) Open(product domain.Product) {
	p := product
	s.product = &p
	s.chosen = nil
}

// Product returns the product the selection is scoped to.
func (s *Selection) Product() (domain.Product, bool) {
	if s.product == nil {
		return domain.Product{}, false
	}
	return *s.product, true
}

// Select adds addOn. Selecting an already chosen add-on is a no-op. A call
// rejected with ErrAddOnLimit or ErrUnknownAddOn leaves the set unchanged.
func (s *Selection) Select(addOn domain.AddOn) error {
	if s.product == nil {
		return ErrNoProduct
	}
	if s.has(addOn.ID) {
		return nil
	}
	offered, ok := s.product.AddOn(addOn.ID)
	if !ok {
		return ErrUnknownAddOn
	}
	if s.LimitReached() {
		return ErrAddOnLimit
	}
	s.chosen = append(s.chosen, offered)
	return nil
}

// Deselect removes addOn if present.
func (s *Selection) Deselect(addOn domain.AddOn) {
	s.chosen = slices.DeleteFunc(s.chosen, func(a domain.AddOn) bool { return a.ID == addOn.ID })
}

// Toggle flips addOn the way a checkbox would.
func (s *Selection) Toggle(addOn domain.AddOn) error {
	if s.has(addOn.ID) {
		s.Deselect(addOn)
		return nil
	}
	return s.Select(addOn)
}

// Reset clears the chosen add-ons but keeps the product scope.
func (s *Selection) Reset() {
	s.chosen = nil
}

// LimitReached reports whether no further add-on can be selected.
func (s *Selection) LimitReached() bool {
	if s.product == nil {
		return true
	}
	return len(s.chosen) >= s.product.MaxAddOns
}

// Selected returns the chosen add-ons in selection order.
func (s *Selection) Selected() []domain.AddOn {
	return slices.Clone(s.chosen)
}

// AddTo adds the scoped product with the chosen add-ons to c and resets the
// selection, mirroring a confirmed product dialog.
func (s *Selection) AddTo(c *Cart) (Line, error) {
	if s.product == nil {
		return Line{}, ErrNoProduct
	}
	line := c.AddOrIncrement(*s.product, s.chosen)
	s.Reset()
	return line, nil
}

func (s *Selection) has(id domain.AddOnID) bool {
	return slices.ContainsFunc(s.chosen, func(a domain.AddOn) bool { return a.ID == id })
}
