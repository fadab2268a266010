package model

import (
	"errors"
	"hotelops/shared/constant"
	"hotelops/shared/model"
	"math"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldPropertyID    = "property_id"
	FieldRoomID        = "room_id"
	FieldGuestID       = "guest_id"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
)

var ErrInvalidTransition = errors.New("invalid booking status transition")

type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// CanTransition follows confirmed -> checked_in -> checked_out, with cancellation
// allowed before check-out. Staying in the same status is always allowed.
func (s Status) CanTransition(to Status) bool {
	if !to.Valid() {
		return false
	}

	if s == to {
		return true
	}

	switch s {
	case StatusConfirmed:
		return to == StatusCheckedIn || to == StatusCancelled
	case StatusCheckedIn:
		return to == StatusCheckedOut || to == StatusCancelled
	default:
		return false
	}
}

// Next lists the statuses a booking in s can move to.
func (s Status) Next() []Status {
	next := []Status{}

	for _, to := range []Status{StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled} {
		if to != s && s.CanTransition(to) {
			next = append(next, to)
		}
	}

	return next
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return true
	default:
		return false
	}
}

// Booking check-in and check-out are calendar dates held at midnight UTC.
type Booking struct {
	ID            string        `db:"id"             json:"id"`
	PropertyID    string        `db:"property_id"    json:"property_id"`
	RoomID        string        `db:"room_id"        json:"room_id"`
	GuestID       string        `db:"guest_id"       json:"guest_id"`
	CheckIn       time.Time     `db:"check_in"       json:"check_in"`
	CheckOut      time.Time     `db:"check_out"      json:"check_out"`
	Status        Status        `db:"status"         json:"status"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	TotalAmount   float64       `db:"total_amount"   json:"total_amount"`
	model.Metadata
}

// Nights is the stay length rounded to whole days.
func (b Booking) Nights() int {
	return int(math.Round(b.CheckOut.Sub(b.CheckIn).Hours() / constant.HoursPerDay))
}

// Covers reports whether day falls within check-in and check-out, both inclusive.
// Both ends count so a turnover day shows the departing and the arriving booking.
func (b Booking) Covers(day time.Time) bool {
	return !day.Before(b.CheckIn) && !day.After(b.CheckOut)
}

// Active reports whether the booking still holds its room.
func (b Booking) Active() bool {
	return b.Status != StatusCancelled
}

// StatusPatch is the update applied by a status change.
type StatusPatch struct {
	Status Status `db:"status"`
}

// PaymentPatch is the update applied by a payment status change.
type PaymentPatch struct {
	PaymentStatus PaymentStatus `db:"payment_status"`
}
