package dto_test

import (
	"hotelops/internal/domains/pos/model"
	"hotelops/internal/domains/pos/model/dto"
	productModel "hotelops/internal/domains/product/model"
	saleModel "hotelops/internal/domains/sale/model"
	"hotelops/shared/validator"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartResponseFromItems(t *testing.T) {
	cart := model.NewCart()
	cart.Add(productModel.Product{ID: "p1", Name: "Soda", Price: 100})
	cart.Add(productModel.Product{ID: "p1", Name: "Soda", Price: 100})

	var res dto.CartResponse
	res.FromItems(cart.Items())

	require.Len(t, res.Items, 1)
	assert.Equal(t, "Soda", res.Items[0].Product.Name)
	assert.Equal(t, 2, res.Items[0].Quantity)
	assert.InDelta(t, 200.0, res.Total, 0.001)
}

func TestCheckoutRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CheckoutRequest
		wantErr bool
	}{
		{name: "cash", req: dto.CheckoutRequest{PaymentMethod: saleModel.PaymentCash}},
		{name: "room charge with booking", req: dto.CheckoutRequest{PaymentMethod: saleModel.PaymentRoomCharge, BookingID: "b1"}},
		{name: "room charge without booking", req: dto.CheckoutRequest{PaymentMethod: saleModel.PaymentRoomCharge}, wantErr: true},
		{name: "unknown method", req: dto.CheckoutRequest{PaymentMethod: "cheque"}, wantErr: true},
		{name: "missing method", req: dto.CheckoutRequest{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}
