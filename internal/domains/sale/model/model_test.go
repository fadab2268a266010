package model_test

import (
	"hotelops/internal/domains/sale/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleItems_ValueAndScan(t *testing.T) {
	items := model.SaleItems{
		{ProductID: "p-1", Name: "Soda", Quantity: 2, Price: 80, Subtotal: 160},
		{ProductID: "p-2", Name: "Tusker", Quantity: 1, Price: 250, Subtotal: 250},
	}

	value, err := items.Value()
	require.NoError(t, err)

	var scanned model.SaleItems
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, items, scanned)

	var fromString model.SaleItems
	require.NoError(t, fromString.Scan(`[{"product_id":"p-3","quantity":1,"price":50,"subtotal":50}]`))
	assert.Len(t, fromString, 1)
}

func TestSaleItems_EdgeCases(t *testing.T) {
	var nilItems model.SaleItems

	value, err := nilItems.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)

	var scanned model.SaleItems
	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
	assert.Error(t, scanned.Scan([]byte("{not json")))
}

func TestSaleItems_Total(t *testing.T) {
	items := model.SaleItems{{Subtotal: 160}, {Subtotal: 250}}

	assert.InDelta(t, 410.0, items.Total(), 0.0001)
	assert.Zero(t, model.SaleItems{}.Total())
}

func TestEnums(t *testing.T) {
	assert.True(t, model.PaymentRoomCharge.Valid())
	assert.False(t, model.PaymentMethod("cheque").Valid())
	assert.True(t, model.StatusCompleted.Valid())
	assert.False(t, model.Status("refunded").Valid())
}
