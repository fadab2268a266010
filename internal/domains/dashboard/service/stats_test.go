package service_test

import (
	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/dashboard/service"
	roomModel "hotelops/internal/domains/room/model"
	saleModel "hotelops/internal/domains/sale/model"
	gModel "hotelops/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jan(day int) time.Time {
	return time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)
}

var rooms = []roomModel.Room{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}, {ID: "r4"}}

func stay(id, roomID, guestID string, in, out int, status bookingModel.Status, amount float64, created int) bookingModel.Booking {
	return bookingModel.Booking{
		ID:          id,
		RoomID:      roomID,
		GuestID:     guestID,
		CheckIn:     jan(in),
		CheckOut:    jan(out),
		Status:      status,
		TotalAmount: amount,
		Metadata:    gModel.Metadata{CreatedAt: jan(created)},
	}
}

func TestSummarize(t *testing.T) {
	bookings := []bookingModel.Booking{
		stay("b1", "r1", "g1", 10, 12, bookingModel.StatusCheckedOut, 200, 1),
		stay("b2", "r1", "g2", 14, 17, bookingModel.StatusCheckedIn, 300, 2),
		stay("b3", "r2", "g1", 15, 16, bookingModel.StatusConfirmed, 100, 3),
		stay("b4", "r3", "g3", 15, 18, bookingModel.StatusCancelled, 900, 4),
		stay("b5", "r2", "g4", 16, 19, bookingModel.StatusConfirmed, 250, 5),
	}
	sales := []saleModel.Sale{
		{ID: "s1", Total: 120, Status: saleModel.StatusCompleted},
		{ID: "s2", Total: 80, Status: saleModel.StatusCompleted},
		{ID: "s3", Total: 999, Status: saleModel.StatusCancelled},
	}

	summary := service.Summarize(rooms, bookings, sales, time.Date(2025, 1, 15, 18, 30, 0, 0, time.UTC))

	assert.Equal(t, jan(15), summary.Today)
	assert.Equal(t, 4, summary.TotalRooms)
	assert.Equal(t, 2, summary.OccupiedRooms)
	assert.InDelta(t, 50.0, summary.OccupancyRate, 0.001)
	assert.Equal(t, 4, summary.BookingsCount)
	assert.Equal(t, 3, summary.GuestsCount)
	assert.InDelta(t, 850.0, summary.BookingRevenue, 0.001)
	assert.InDelta(t, 200.0, summary.SalesRevenue, 0.001)
	assert.InDelta(t, 1050.0, summary.Revenue(), 0.001)

	require.Len(t, summary.RecentBookings, 3)
	assert.Equal(t, "b5", summary.RecentBookings[0].ID)
	assert.Equal(t, "b3", summary.RecentBookings[1].ID)
	assert.Equal(t, "b2", summary.RecentBookings[2].ID)

	require.Len(t, summary.Occupancy, 7)
	assert.Equal(t, jan(9), summary.Occupancy[0].Date)
	assert.Equal(t, jan(15), summary.Occupancy[6].Date)

	occupied := make([]int, len(summary.Occupancy))
	for i, point := range summary.Occupancy {
		occupied[i] = point.Occupied
	}

	assert.Equal(t, []int{0, 1, 1, 0, 0, 1, 2}, occupied)
	assert.InDelta(t, 25.0, summary.Occupancy[1].Rate, 0.001)
}

func TestSummarizeWithoutRooms(t *testing.T) {
	summary := service.Summarize(nil, nil, nil, jan(15))

	assert.Zero(t, summary.OccupancyRate)
	assert.Empty(t, summary.RecentBookings)
	assert.Len(t, summary.Occupancy, 7)
}

func TestSummarizeIgnoresZoneOfStoredDates(t *testing.T) {
	eat := time.FixedZone("EAT", 3*3600)
	booking := bookingModel.Booking{
		ID:       "b1",
		RoomID:   "r1",
		CheckIn:  time.Date(2025, 1, 15, 0, 0, 0, 0, eat),
		CheckOut: time.Date(2025, 1, 16, 0, 0, 0, 0, eat),
		Status:   bookingModel.StatusConfirmed,
	}

	summary := service.Summarize(rooms[:1], []bookingModel.Booking{booking}, nil, jan(15))

	assert.Equal(t, 1, summary.OccupiedRooms)
}

func TestSummarizeCountsNightsNotCheckOutDays(t *testing.T) {
	tests := []struct {
		name     string
		bookings []bookingModel.Booking
		occupied int
	}{
		{
			name:     "departure day is free",
			bookings: []bookingModel.Booking{stay("b1", "r1", "g1", 12, 15, bookingModel.StatusCheckedOut, 300, 1)},
			occupied: 0,
		},
		{
			name:     "arrival day is occupied",
			bookings: []bookingModel.Booking{stay("b1", "r1", "g1", 15, 17, bookingModel.StatusConfirmed, 200, 1)},
			occupied: 1,
		},
		{
			name: "turnover counts the room once",
			bookings: []bookingModel.Booking{
				stay("b1", "r1", "g1", 12, 15, bookingModel.StatusCheckedOut, 300, 1),
				stay("b2", "r1", "g2", 15, 17, bookingModel.StatusCheckedIn, 200, 2),
			},
			occupied: 1,
		},
		{
			name: "turnovers in two rooms",
			bookings: []bookingModel.Booking{
				stay("b1", "r1", "g1", 12, 15, bookingModel.StatusCheckedOut, 300, 1),
				stay("b2", "r2", "g2", 13, 15, bookingModel.StatusCheckedOut, 200, 2),
				stay("b3", "r2", "g3", 15, 16, bookingModel.StatusConfirmed, 100, 3),
			},
			occupied: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := service.Summarize(rooms, tt.bookings, nil, jan(15))

			assert.Equal(t, tt.occupied, summary.OccupiedRooms)
			assert.Equal(t, tt.occupied, summary.Occupancy[6].Occupied)
		})
	}
}
