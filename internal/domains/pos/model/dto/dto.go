package dto

import (
	"hotelops/internal/domains/pos/model"
	productDto "hotelops/internal/domains/product/model/dto"
	saleModel "hotelops/internal/domains/sale/model"
)

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	PaymentMethod saleModel.PaymentMethod `json:"payment_method" validate:"required,enum"`
	// BookingID is the stay a room charge is billed to.
	BookingID string `json:"booking_id" validate:"required_if=PaymentMethod room_charge"`
}

type CartItemResponse struct {
	Product  productDto.ProductResponse `json:"product"`
	Quantity int                        `json:"quantity"`
	Subtotal float64                    `json:"subtotal"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

func (r *CartResponse) FromItems(items []model.CartItem) {
	r.Items = make([]CartItemResponse, len(items))
	r.Total = 0

	for i, item := range items {
		r.Items[i].Product.FromModel(item.Product)
		r.Items[i].Quantity = item.Quantity
		r.Items[i].Subtotal = item.Subtotal()
		r.Total += item.Subtotal()
	}
}

type SearchProductsResponse struct {
	productDto.GetProductsResponse
	Suggestion string `json:"suggestion,omitempty"`
}
