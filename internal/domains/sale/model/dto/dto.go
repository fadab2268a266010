package dto

import (
	"hotelops/internal/domains/sale/model"
	gDto "hotelops/shared/dto"
)

type SaleItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	PropertyID    string             `json:"property_id"`
	BookingID     string             `json:"booking_id,omitempty"`
	GuestID       string             `json:"guest_id,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	Total         float64            `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	ReceiptURL    string             `json:"receipt_url,omitempty"`
	gDto.Metadata
}

func (r *SaleResponse) FromModel(m model.Sale) {
	r.ID = m.ID
	r.PropertyID = m.PropertyID
	r.Total = m.Total
	r.PaymentMethod = string(m.PaymentMethod)
	r.Status = string(m.Status)

	if m.BookingID != nil {
		r.BookingID = *m.BookingID
	}

	if m.GuestID != nil {
		r.GuestID = *m.GuestID
	}

	if m.ReceiptURL != nil {
		r.ReceiptURL = *m.ReceiptURL
	}

	r.Items = make([]SaleItemResponse, len(m.Items))
	for i, item := range m.Items {
		r.Items[i] = SaleItemResponse(item)
	}

	r.Metadata.FromModel(m.Metadata)
}
