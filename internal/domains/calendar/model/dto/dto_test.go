package dto_test

import (
	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/calendar/model"
	"hotelops/internal/domains/calendar/model/dto"
	"hotelops/internal/domains/calendar/service"
	roomModel "hotelops/internal/domains/room/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarResponseFromPlan(t *testing.T) {
	rooms := []roomModel.Room{{ID: "r1", RoomNumber: "101", Type: "Standard"}}
	bookings := []bookingModel.Booking{{
		ID:       "b1",
		RoomID:   "r1",
		CheckIn:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC),
		Status:   bookingModel.StatusCheckedIn,
	}}

	plan := service.Render(rooms, bookings, time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), model.RenderOptions{})

	var res dto.CalendarResponse
	res.FromPlan("2025-01-16", plan)

	assert.Equal(t, "Jan 13 - Jan 19, 2025", res.Label)
	require.Len(t, res.Days, 7)
	assert.Equal(t, "2025-01-13", res.Days[0].Date)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "101", res.Rows[0].RoomNumber)

	wed := res.Rows[0].Cells[2]
	assert.Equal(t, "2025-01-15", wed.Date)
	require.Len(t, wed.Blocks, 1)
	assert.Equal(t, dto.BlockResponse{
		BookingID:     "b1",
		Status:        "checked_in",
		FirstDay:      true,
		Label:         "3 nights",
		BottomPercent: 80,
		ZIndex:        10,
		Accent:        "success",
	}, wed.Blocks[0])

	assert.Empty(t, res.Rows[0].Cells[0].Blocks)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, 3, res.Bookings[0].Nights)
}

func TestNavigateRequestDirection(t *testing.T) {
	assert.True(t, dto.NavigateRequest{Direction: model.DirectionToday}.Direction.Valid())
	assert.False(t, dto.NavigateRequest{Direction: "sideways"}.Direction.Valid())
}
