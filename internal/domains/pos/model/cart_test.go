package model_test

import (
	"hotelops/internal/domains/pos/model"
	productModel "hotelops/internal/domains/product/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	soda  = productModel.Product{ID: "p1", Name: "Soda", Category: "drinks", Price: 100}
	chips = productModel.Product{ID: "p2", Name: "Chips", Category: "snacks", Price: 150}
)

func TestCartAddIncrements(t *testing.T) {
	cart := model.NewCart()

	cart.Add(soda)
	item := cart.Add(soda)
	cart.Add(chips)

	assert.Equal(t, 2, item.Quantity)
	require.Len(t, cart.Items(), 2)
	assert.Equal(t, "p1", cart.Items()[0].Product.ID)
	assert.InDelta(t, 350.0, cart.Total(), 0.001)
}

func TestCartUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		quantity  int
		found     bool
		lines     int
		total     float64
	}{
		{name: "set quantity", productID: "p1", quantity: 3, found: true, lines: 2, total: 450},
		{name: "zero removes", productID: "p1", quantity: 0, found: true, lines: 1, total: 150},
		{name: "negative removes", productID: "p2", quantity: -2, found: true, lines: 1, total: 100},
		{name: "unknown product", productID: "p9", quantity: 1, found: false, lines: 2, total: 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := model.NewCart()
			cart.Add(soda)
			cart.Add(chips)

			assert.Equal(t, tt.found, cart.UpdateQuantity(tt.productID, tt.quantity))
			assert.Len(t, cart.Items(), tt.lines)
			assert.InDelta(t, tt.total, cart.Total(), 0.001)
		})
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := model.NewCart()
	cart.Add(soda)
	cart.Add(chips)

	assert.True(t, cart.Remove("p1"))
	assert.False(t, cart.Remove("p1"))
	assert.False(t, cart.Empty())

	cart.Clear()

	assert.True(t, cart.Empty())
	assert.Zero(t, cart.Total())
}

func TestCartItemsIsACopy(t *testing.T) {
	cart := model.NewCart()
	cart.Add(soda)

	items := cart.Items()
	items[0].Quantity = 10

	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartSaleItems(t *testing.T) {
	cart := model.NewCart()
	cart.Add(soda)
	cart.Add(soda)
	cart.Add(chips)

	items := cart.SaleItems()

	require.Len(t, items, 2)
	assert.Equal(t, "Soda", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 200.0, items[0].Subtotal, 0.001)
	assert.InDelta(t, cart.Total(), items.Total(), 0.001)
}
