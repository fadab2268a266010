package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"hotelops/shared/model"

	"github.com/goccy/go-json"
)

const (
	TableName  = "sales"
	EntityName = "sale"

	FieldID         = "id"
	FieldPropertyID = "property_id"
	FieldBookingID  = "booking_id"
	FieldStatus     = "status"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCard       PaymentMethod = "card"
	PaymentMpesa      PaymentMethod = "mpesa"
	PaymentRoomCharge PaymentMethod = "room_charge"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentMpesa, PaymentRoomCharge:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

type SaleItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

// SaleItems is stored as a jsonb column.
type SaleItems []SaleItem

// Value implements driver.Valuer.
func (s SaleItems) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}

	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sale items: %w", err)
	}

	return b, nil
}

// Scan implements sql.Scanner.
func (s *SaleItems) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*s = SaleItems{}

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported sale items column type")
	}

	if err := json.Unmarshal(raw, s); err != nil {
		return fmt.Errorf("failed to unmarshal sale items: %w", err)
	}

	return nil
}

// Total sums the line subtotals.
func (s SaleItems) Total() float64 {
	total := 0.0
	for _, item := range s {
		total += item.Subtotal
	}

	return total
}

type Sale struct {
	ID            string        `db:"id"             json:"id"`
	PropertyID    string        `db:"property_id"    json:"property_id"`
	BookingID     *string       `db:"booking_id"     json:"booking_id,omitempty"`
	GuestID       *string       `db:"guest_id"       json:"guest_id,omitempty"`
	Items         SaleItems     `db:"items"          json:"items"`
	Total         float64       `db:"total"          json:"total"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"payment_method"`
	Status        Status        `db:"status"         json:"status"`
	ReceiptURL    *string       `db:"receipt_url"    json:"receipt_url,omitempty"`
	model.Metadata
}
