// Package cart holds the shopping cart and the per-product add-on selection.
//
// Both types are plain in-memory objects with explicit construction and no
// I/O. They are owned by a single caller and are not safe for concurrent use.
package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"cardapio/internal/domain"
)

// Line is one product entry of the cart.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
	AddOns   []domain.AddOn `json:"addOns,omitempty"`
}

// Subtotal is the line's contribution to the cart total. Add-ons are charged
// once per line, not per unit.
func (l Line) Subtotal() decimal.Decimal {
	total := l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
	for _, a := range l.AddOns {
		total = total.Add(a.Price)
	}
	return total
}

func (l Line) clone() Line {
	l.AddOns = slices.Clone(l.AddOns)
	return l
}

// Cart keeps at most one Line per product id, in insertion order.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddOrIncrement adds one unit of product. A new line starts at quantity 1
// with the given add-ons. An existing line is incremented and its add-ons are
// replaced only when selected is non-empty.
func (c *Cart) AddOrIncrement(product domain.Product, selected []domain.AddOn) Line {
	if i := c.index(product.ID); i >= 0 {
		c.lines[i].Quantity++
		if len(selected) > 0 {
			c.lines[i].AddOns = slices.Clone(selected)
		}
		return c.lines[i].clone()
	}

	line := Line{
		Product:  product,
		Quantity: 1,
		AddOns:   slices.Clone(selected),
	}
	c.lines = append(c.lines, line)
	return line.clone()
}

// Remove deletes the line for id and reports whether one existed.
func (c *Cart) Remove(id domain.ProductID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	return true
}

// Line returns the line for id.
func (c *Cart) Line(id domain.ProductID) (Line, bool) {
	i := c.index(id)
	if i < 0 {
		return Line{}, false
	}
	return c.lines[i].clone(), true
}

// Total is Σ(price × quantity) plus Σ add-on prices, each add-on counted once
// per line.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Len is the number of distinct products in the cart.
func (c *Cart) Len() int { return len(c.lines) }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Lines returns a deep copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = l.clone()
	}
	return out
}

// Snapshot returns an independent copy of the cart.
func (c *Cart) Snapshot() *Cart {
	return &Cart{lines: c.Lines()}
}

// Restore replaces the contents with lines, e.g. when reloading a persisted
// cart. Lines with a non-positive quantity are dropped and repeated product
// ids are merged into the first occurrence.
func (c *Cart) Restore(lines []Line) {
	c.lines = nil
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := c.index(l.Product.ID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			if len(l.AddOns) > 0 {
				c.lines[i].AddOns = slices.Clone(l.AddOns)
			}
			continue
		}
		c.lines = append(c.lines, l.clone())
	}
}

func (c *Cart) index(id domain.ProductID) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.Product.ID == id })
}
