package service

import (
	"cmp"
	"math"
	"slices"
	"time"

	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/dashboard/model"
	roomModel "hotelops/internal/domains/room/model"
	saleModel "hotelops/internal/domains/sale/model"
	"hotelops/shared/timezone"
)

// Summarize computes the dashboard figures. Cancelled bookings count for nothing.
func Summarize(rooms []roomModel.Room, bookings []bookingModel.Booking, sales []saleModel.Sale, today time.Time) model.Summary {
	today = timezone.DateOf(today)

	active := make([]bookingModel.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.Active() {
			active = append(active, booking)
		}
	}

	summary := model.Summary{
		Today:         today,
		TotalRooms:    len(rooms),
		BookingsCount: len(active),
	}

	guests := map[string]struct{}{}

	for _, booking := range active {
		summary.BookingRevenue += booking.TotalAmount

		if booking.GuestID != "" {
			guests[booking.GuestID] = struct{}{}
		}
	}

	summary.GuestsCount = len(guests)

	for _, sale := range sales {
		if sale.Status == saleModel.StatusCompleted {
			summary.SalesRevenue += sale.Total
		}
	}

	summary.OccupiedRooms = occupiedRooms(rooms, active, today)
	summary.OccupancyRate = rate(summary.OccupiedRooms, len(rooms))

	summary.Occupancy = make([]model.OccupancyPoint, model.OccupancyDays)
	for i := range model.OccupancyDays {
		day := today.AddDate(0, 0, i-model.OccupancyDays+1)
		occupied := occupiedRooms(rooms, active, day)

		summary.Occupancy[i] = model.OccupancyPoint{
			Date:     day,
			Occupied: occupied,
			Rate:     rate(occupied, len(rooms)),
		}
	}

	recent := slices.Clone(active)
	slices.SortStableFunc(recent, func(a, b bookingModel.Booking) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	summary.RecentBookings = recent[:min(len(recent), model.RecentBookingsLimit)]

	return summary
}

// occupiedRooms counts the listed rooms holding an active booking for the night of day.
func occupiedRooms(rooms []roomModel.Room, active []bookingModel.Booking, day time.Time) int {
	occupied := 0

	for _, room := range rooms {
		if slices.ContainsFunc(active, func(b bookingModel.Booking) bool {
			return b.RoomID == room.ID && nightOf(b, day)
		}) {
			occupied++
		}
	}

	return occupied
}

// nightOf reports check_in <= day < check_out on calendar dates; stored dates may carry
// a zone. The check-out day belongs to the next arrival, not the departing stay.
func nightOf(b bookingModel.Booking, day time.Time) bool {
	return !day.Before(timezone.DateOf(b.CheckIn)) && day.Before(timezone.DateOf(b.CheckOut))
}

// rate is a percentage rounded to one decimal.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}

	return math.Round(float64(part)/float64(total)*1000) / 10
}
