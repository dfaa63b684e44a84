package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AddOn is an optional paid extra that can be attached to a product.
type AddOn struct {
	ID          AddOnID         `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Product is a catalog entry. MaxAddOns bounds how many add-ons a single
// cart line may carry.
type Product struct {
	ID          ProductID
	Name        string
	Description *string
	Price       decimal.Decimal
	Image       *string
	MaxAddOns   int
	AddOns      []AddOn
}

// Offers reports whether the product can be combined with the add-on.
func (p Product) Offers(id AddOnID) bool {
	for _, a := range p.AddOns {
		if a.ID == id {
			return true
		}
	}
	return false
}

// AddOn returns the offered add-on with the given id.
func (p Product) AddOn(id AddOnID) (AddOn, bool) {
	for _, a := range p.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}

type productAddOn struct {
	Additional AddOn `json:"additional"`
}

type productWire struct {
	ID                 ProductID       `json:"id"`
	Name               string          `json:"name"`
	Description        *string         `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Image              *string         `json:"image"`
	AdditionalQuantity int             `json:"additionalQuantity"`
	ProductAdditionals []productAddOn  `json:"productAdditionals"`
}

// MarshalJSON encodes the product in the API's nested add-on layout.
func (p Product) MarshalJSON() ([]byte, error) {
	aux := productWire{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		Image:              p.Image,
		AdditionalQuantity: p.MaxAddOns,
		ProductAdditionals: make([]productAddOn, len(p.AddOns)),
	}
	for i := range p.AddOns {
		aux.ProductAdditionals[i] = productAddOn{Additional: p.AddOns[i]}
	}
	return json.Marshal(aux)
}

// UnmarshalJSON mirrors MarshalJSON.
func (p *Product) UnmarshalJSON(data []byte) error {
	var aux productWire
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Product{
		ID:          aux.ID,
		Name:        aux.Name,
		Description: aux.Description,
		Price:       aux.Price,
		Image:       aux.Image,
		MaxAddOns:   aux.AdditionalQuantity,
	}
	if len(aux.ProductAdditionals) > 0 {
		p.AddOns = make([]AddOn, len(aux.ProductAdditionals))
		for i := range aux.ProductAdditionals {
			p.AddOns[i] = aux.ProductAdditionals[i].Additional
		}
	}
	return nil
}

// Category groups products on the menu.
type Category struct {
	ID       CategoryID `json:"id"`
	Name     string     `json:"name"`
	Products []Product  `json:"products"`
}

// OperatingHour is one day's opening window; times are "HH:MM" or "HH:MM:SS".
type OperatingHour struct {
	DayOfWeek   string `json:"dayOfWeek"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}

// Restaurant is the public profile served at GET /{username}/.
type Restaurant struct {
	ID             RestaurantID    `json:"id"`
	Name           string          `json:"name"`
	Address        Address         `json:"address"`
	OperatingHours []OperatingHour `json:"operatingHours"`
	PhoneNumber    string          `json:"phoneNumber"`
	Image          string          `json:"image"`
	Banner         string          `json:"banner"`
}

// RestaurantRef is the part of the restaurant profile kept in the session so
// later commands (register, checkout) can name the owning account.
type RestaurantRef struct {
	ID       RestaurantID `json:"id"`
	Name     string       `json:"name"`
	Username Username     `json:"username"`
}
