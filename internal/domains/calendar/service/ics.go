package service

import (
	"fmt"
	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/calendar/model"
	"time"

	ical "github.com/arran4/golang-ical"
)

const icsProductID = "-//hotelops//booking calendar//EN"

// ExportICS writes the bookings of plan as all-day events. DTEND is the check-out date,
// exclusive as iCalendar expects, so an event spans the booked nights.
func ExportICS(plan model.RenderPlan, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("Bookings " + plan.Label)

	rooms := make(map[string]string, len(plan.Rows))
	for _, row := range plan.Rows {
		rooms[row.Room.ID] = row.Room.RoomNumber
	}

	for _, booking := range plan.Bookings {
		span := dateSpan(booking)

		event := cal.AddEvent(booking.ID + "@hotelops")
		event.SetDtStampTime(stamp.UTC())
		event.SetAllDayStartAt(span.CheckIn)
		event.SetAllDayEndAt(span.CheckOut)
		event.SetSummary(fmt.Sprintf("Room %s: %s", rooms[booking.RoomID], NightsLabel(span.Nights())))
		event.SetDescription(fmt.Sprintf("Booking %s, guest %s, status %s, payment %s, total %.2f",
			booking.ID, booking.GuestID, booking.Status, booking.PaymentStatus, booking.TotalAmount))
		event.SetStatus(icsStatus(booking.Status))
	}

	return cal.Serialize()
}

func icsStatus(status bookingModel.Status) ical.ObjectStatus {
	if status == bookingModel.StatusCancelled {
		return ical.ObjectStatusCancelled
	}

	return ical.ObjectStatusConfirmed
}
