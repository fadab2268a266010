package model

import (
	bookingModel "hotelops/internal/domains/booking/model"
	"time"
)

const (
	RecentBookingsLimit = 3
	OccupancyDays       = 7
)

type OccupancyPoint struct {
	Date     time.Time
	Occupied int
	Rate     float64
}

// Summary is what the dashboard shows for one property on one day.
type Summary struct {
	Today          time.Time
	TotalRooms     int
	OccupiedRooms  int
	OccupancyRate  float64
	BookingRevenue float64
	SalesRevenue   float64
	BookingsCount  int
	GuestsCount    int
	RecentBookings []bookingModel.Booking
	Occupancy      []OccupancyPoint
}

func (s Summary) Revenue() float64 {
	return s.BookingRevenue + s.SalesRevenue
}
