package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OrderStatusPending is the status every new order is submitted with.
const OrderStatusPending = "PENDING"

// OrderSubmission is the write-only projection of a cart sent to POST /order.
type OrderSubmission struct {
	RestaurantID *RestaurantID
	ClientID     ClientID
	Observations string
	Status       string
	Items        []OrderItemSubmission
}

// OrderItemSubmission is one cart line as submitted. Price is the unit price
// captured when the product was added to the cart.
type OrderItemSubmission struct {
	ProductID ProductID
	Quantity  int
	Price     decimal.Decimal
	AddOns    []OrderAddOnSubmission
}

// OrderAddOnSubmission references a chosen add-on of an order item.
type OrderAddOnSubmission struct {
	AddOnID  AddOnID
	Quantity int
}

type idRef struct {
	ID int64 `json:"id"`
}

// An unknown restaurant is still sent as an object, with a null id.
type nullableIDRef struct {
	ID *int64 `json:"id"`
}

// The API takes the client id as a string.
type stringIDRef struct {
	ID int64 `json:"id,string"`
}

type orderAddOnWire struct {
	Additional idRef `json:"additional"`
	Quantity   int   `json:"quantity"`
}

type orderItemWire struct {
	Product             idRef            `json:"product"`
	Quantity            int              `json:"quantity"`
	Price               json.Number      `json:"price"`
	OrderItemAdditional []orderAddOnWire `json:"orderItemAdditional"`
}

type orderSubmissionWire struct {
	User         *nullableIDRef  `json:"user"`
	Observations string          `json:"observations"`
	OrderItems   []orderItemWire `json:"orderItems"`
	Client       stringIDRef     `json:"client"`
	Status       string          `json:"status"`
}

// MarshalJSON encodes the submission in the nested-reference layout of the
// order endpoint, with prices as JSON numbers.
func (s OrderSubmission) MarshalJSON() ([]byte, error) {
	aux := orderSubmissionWire{
		Observations: s.Observations,
		OrderItems:   make([]orderItemWire, len(s.Items)),
		Client:       stringIDRef{ID: int64(s.ClientID)},
		Status:       s.Status,
		User:         &nullableIDRef{},
	}
	if s.RestaurantID != nil {
		id := int64(*s.RestaurantID)
		aux.User.ID = &id
	}
	for i, item := range s.Items {
		wire := orderItemWire{
			Product:             idRef{ID: int64(item.ProductID)},
			Quantity:            item.Quantity,
			Price:               json.Number(item.Price.String()),
			OrderItemAdditional: make([]orderAddOnWire, len(item.AddOns)),
		}
		for j, add := range item.AddOns {
			wire.OrderItemAdditional[j] = orderAddOnWire{
				Additional: idRef{ID: int64(add.AddOnID)},
				Quantity:   add.Quantity,
			}
		}
		aux.OrderItems[i] = wire
	}
	return json.Marshal(aux)
}

// UnmarshalJSON mirrors MarshalJSON.
func (s *OrderSubmission) UnmarshalJSON(data []byte) error {
	var aux orderSubmissionWire
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = OrderSubmission{
		ClientID:     ClientID(aux.Client.ID),
		Observations: aux.Observations,
		Status:       aux.Status,
		Items:        make([]OrderItemSubmission, len(aux.OrderItems)),
	}
	if aux.User != nil && aux.User.ID != nil {
		id := RestaurantID(*aux.User.ID)
		s.RestaurantID = &id
	}
	for i, wire := range aux.OrderItems {
		price := decimal.Zero
		if wire.Price != "" {
			parsed, err := decimal.NewFromString(wire.Price.String())
			if err != nil {
				return err
			}
			price = parsed
		}
		item := OrderItemSubmission{
			ProductID: ProductID(wire.Product.ID),
			Quantity:  wire.Quantity,
			Price:     price,
		}
		for _, add := range wire.OrderItemAdditional {
			item.AddOns = append(item.AddOns, OrderAddOnSubmission{
				AddOnID:  AddOnID(add.Additional.ID),
				Quantity: add.Quantity,
			})
		}
		s.Items[i] = item
	}
	return nil
}

// Order is a stored order as returned by the order and history endpoints.
type Order struct {
	ID           OrderID         `json:"id"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	Observations string          `json:"observations"`
	CreatedAt    string          `json:"createdAt"`
	Items        []OrderItem     `json:"orderItems"`
}

// OrderItem is a stored order line.
type OrderItem struct {
	ID       int64            `json:"id"`
	Quantity int              `json:"quantity"`
	Price    decimal.Decimal  `json:"price"`
	Discount decimal.Decimal  `json:"discount"`
	Total    decimal.Decimal  `json:"total"`
	Product  Product          `json:"product"`
	AddOns   []OrderItemAddOn `json:"orderItemAdditional"`
}

// OrderItemAddOn is a stored add-on of an order line.
type OrderItemAddOn struct {
	ID       int64           `json:"id"`
	AddOn    AddOn           `json:"additional"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Date returns the calendar part of CreatedAt ("2024-05-01T12:00:00" -> "2024-05-01").
func (o Order) Date() string {
	if len(o.CreatedAt) >= 10 {
		return o.CreatedAt[:10]
	}
	return o.CreatedAt
}
