package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderSubmissionWireLayout(t *testing.T) {
	restaurant := RestaurantID(7)
	sub := OrderSubmission{
		RestaurantID: &restaurant,
		ClientID:     42,
		Observations: "no onions",
		Status:       OrderStatusPending,
		Items: []OrderItemSubmission{{
			ProductID: 3,
			Quantity:  2,
			Price:     decimal.RequireFromString("10.50"),
			AddOns:    []OrderAddOnSubmission{{AddOnID: 9, Quantity: 1}},
		}},
	}

	raw, err := json.Marshal(sub)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))

	assert.Equal(t, map[string]any{"id": float64(7)}, generic["user"])
	assert.Equal(t, map[string]any{"id": "42"}, generic["client"])
	assert.Equal(t, "PENDING", generic["status"])

	items := generic["orderItems"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, map[string]any{"id": float64(3)}, item["product"])
	assert.Equal(t, float64(2), item["quantity"])
	assert.Equal(t, 10.5, item["price"])
	assert.Equal(t, []any{map[string]any{"additional": map[string]any{"id": float64(9)}, "quantity": float64(1)}}, item["orderItemAdditional"])

	var back OrderSubmission
	require.NoError(t, json.Unmarshal(raw, &back))
	require.NotNil(t, back.RestaurantID)
	assert.Equal(t, restaurant, *back.RestaurantID)
	assert.Equal(t, ClientID(42), back.ClientID)
	assert.True(t, back.Items[0].Price.Equal(decimal.RequireFromString("10.5")))
}

func TestOrderSubmissionWithoutRestaurantSendsNullUserID(t *testing.T) {
	raw, err := json.Marshal(OrderSubmission{ClientID: 1, Status: OrderStatusPending})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"user":{"id":null}`)
	assert.Contains(t, string(raw), `"orderItems":[]`)

	for _, body := range []string{string(raw), `{"user":null,"client":{"id":"1"}}`} {
		var back OrderSubmission
		require.NoError(t, json.Unmarshal([]byte(body), &back))
		assert.Nil(t, back.RestaurantID, body)
	}
}

func TestProductDecodesNestedAddOns(t *testing.T) {
	raw := `{
		"id": 5, "name": "X-Burger", "description": null, "price": 25.9,
		"image": "burger.png", "additionalQuantity": 2,
		"productAdditionals": [
			{"additional": {"id": 1, "name": "Bacon", "description": null, "price": 4}},
			{"additional": {"id": 2, "name": "Egg", "description": "fried", "price": "2.50"}}
		]
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, ProductID(5), p.ID)
	assert.Equal(t, 2, p.MaxAddOns)
	assert.Nil(t, p.Description)
	require.Len(t, p.AddOns, 2)
	assert.True(t, p.Offers(2))
	assert.False(t, p.Offers(3))
	egg, ok := p.AddOn(2)
	require.True(t, ok)
	assert.True(t, egg.Price.Equal(decimal.RequireFromString("2.5")))
}

func TestOrderDate(t *testing.T) {
	assert.Equal(t, "2024-05-01", Order{CreatedAt: "2024-05-01T12:30:00"}.Date())
	assert.Equal(t, "", Order{}.Date())
}
