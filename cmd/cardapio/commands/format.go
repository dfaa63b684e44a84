package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"cardapio/internal/cart"
	"cardapio/internal/domain"
)

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func printAddOns(w io.Writer, indent string, addOns []domain.AddOn) {
	for _, a := range addOns {
		fmt.Fprintf(w, "%s+ [%d] %s  %s\n", indent, a.ID, a.Name, money(a.Price))
	}
}

func printCart(w io.Writer, c *cart.Cart) {
	if c.IsEmpty() {
		fmt.Fprintln(w, "Cart is empty.")
		return
	}
	for _, l := range c.Lines() {
		fmt.Fprintf(w, "%dx [%d] %s  %s\n", l.Quantity, l.Product.ID, l.Product.Name, money(l.Subtotal()))
		printAddOns(w, "     ", l.AddOns)
	}
	fmt.Fprintf(w, "Total: %s\n", money(c.Total()))
}

func printOrder(w io.Writer, o domain.Order) {
	fmt.Fprintf(w, "Order #%d  %s  %s  %s\n", o.ID, o.Date(), strings.ToLower(o.Status), money(o.Total))
	for _, item := range o.Items {
		fmt.Fprintf(w, "  %dx %s  %s\n", item.Quantity, item.Product.Name, money(item.Total))
		for _, a := range item.AddOns {
			fmt.Fprintf(w, "     + %s\n", a.AddOn.Name)
		}
	}
	if o.Observations != "" {
		fmt.Fprintf(w, "  Note: %s\n", o.Observations)
	}
}
