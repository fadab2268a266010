package dto

import (
	bookingDto "hotelops/internal/domains/booking/model/dto"
	"hotelops/internal/domains/dashboard/model"
	"hotelops/shared/constant"
)

type StatsResponse struct {
	OccupancyRate  float64 `json:"occupancy_rate"`
	OccupiedRooms  int     `json:"occupied_rooms"`
	TotalRooms     int     `json:"total_rooms"`
	Revenue        float64 `json:"revenue"`
	BookingRevenue float64 `json:"booking_revenue"`
	SalesRevenue   float64 `json:"sales_revenue"`
	BookingsCount  int     `json:"bookings_count"`
	GuestsCount    int     `json:"guests_count"`
	Currency       string  `json:"currency"`
}

type OccupancyPointResponse struct {
	Date     string  `json:"date"`
	Day      string  `json:"day"`
	Occupied int     `json:"occupied"`
	Rate     float64 `json:"rate"`
}

type DashboardResponse struct {
	Date           string                       `json:"date"`
	PropertyID     string                       `json:"property_id"`
	Stats          StatsResponse                `json:"stats"`
	RecentBookings []bookingDto.BookingResponse `json:"recent_bookings"`
	Occupancy      []OccupancyPointResponse     `json:"occupancy"`
}

func (r *DashboardResponse) FromModel(propertyID, currency string, m model.Summary) {
	r.Date = m.Today.Format(constant.DayFormat)
	r.PropertyID = propertyID
	r.Stats = StatsResponse{
		OccupancyRate:  m.OccupancyRate,
		OccupiedRooms:  m.OccupiedRooms,
		TotalRooms:     m.TotalRooms,
		Revenue:        m.Revenue(),
		BookingRevenue: m.BookingRevenue,
		SalesRevenue:   m.SalesRevenue,
		BookingsCount:  m.BookingsCount,
		GuestsCount:    m.GuestsCount,
		Currency:       currency,
	}

	r.RecentBookings = make([]bookingDto.BookingResponse, len(m.RecentBookings))
	for i, booking := range m.RecentBookings {
		r.RecentBookings[i].FromModel(booking)
	}

	r.Occupancy = make([]OccupancyPointResponse, len(m.Occupancy))
	for i, point := range m.Occupancy {
		r.Occupancy[i] = OccupancyPointResponse{
			Date:     point.Date.Format(constant.DayFormat),
			Day:      point.Date.Weekday().String()[:3],
			Occupied: point.Occupied,
			Rate:     point.Rate,
		}
	}
}
