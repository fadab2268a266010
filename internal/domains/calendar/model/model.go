// Package model holds the booking calendar render plan: one row per room, one cell per day
// of a Monday-to-Sunday week, and the booking blocks stacked inside each cell.
package model

import (
	bookingModel "hotelops/internal/domains/booking/model"
	roomModel "hotelops/internal/domains/room/model"
	"time"
)

type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
	DirectionToday    Direction = "today"
)

func (d Direction) Valid() bool {
	switch d {
	case DirectionPrevious, DirectionNext, DirectionToday:
		return true
	default:
		return false
	}
}

type Accent string

const (
	AccentPrimary Accent = "primary"
	AccentSuccess Accent = "success"
	AccentNeutral Accent = "neutral"
	AccentDanger  Accent = "danger"
)

const (
	SlotOffsetPercent  = 20
	BlockHeightPercent = 80
	BaseZIndex         = 10
)

// Week is the visible window. Days run Monday to Sunday at midnight UTC.
type Week struct {
	Start time.Time
	End   time.Time
	Days  [7]time.Time
}

type Day struct {
	Date    time.Time
	Weekday string
	Number  string
	IsToday bool
}

// Block is one booking drawn in one cell.
type Block struct {
	Booking       bookingModel.Booking
	Slot          int
	FirstDay      bool
	LastDay       bool
	Label         string
	TopPercent    int
	BottomPercent int
	ZIndex        int
	Accent        Accent
}

type Cell struct {
	Day    time.Time
	Blocks []Block
	// Overflow counts bookings past the visible slot limit.
	Overflow int
}

type Row struct {
	Room  roomModel.Room
	Cells []Cell
}

type RenderPlan struct {
	Week  Week
	Label string
	Days  []Day
	Rows  []Row
	// Bookings lists every booking drawn in the window, in input order.
	Bookings []bookingModel.Booking
}

type RenderOptions struct {
	// Today marks the matching header day.
	Today time.Time
	// MaxVisibleSlots caps the blocks drawn per cell; 0 draws all of them.
	MaxVisibleSlots int
}

// Find returns the booking with id among the bookings drawn in the plan.
func (p RenderPlan) Find(bookingID string) (bookingModel.Booking, bool) {
	for _, booking := range p.Bookings {
		if booking.ID == bookingID {
			return booking, true
		}
	}

	return bookingModel.Booking{}, false
}
