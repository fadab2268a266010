// Package service renders the booking calendar and keeps its navigation state.
//
// Render is pure: the same rooms, bookings, date and options always give a deeply equal plan.
// A booking belongs to the cell (room, day) when it is booked on that room and
// check_in <= day <= check_out, so a turnover day shows both the departing and the arriving booking.
package service

import (
	"fmt"
	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/calendar/model"
	roomModel "hotelops/internal/domains/room/model"
	"hotelops/shared/constant"
	"hotelops/shared/timezone"
	"time"
)

// WeekOf returns the Monday-to-Sunday week containing date.
func WeekOf(date time.Time) model.Week {
	day := timezone.DateOf(date)
	offset := (int(day.Weekday()) + constant.DaysPerWeek - 1) % constant.DaysPerWeek

	week := model.Week{Start: day.AddDate(0, 0, -offset)}
	for i := range week.Days {
		week.Days[i] = week.Start.AddDate(0, 0, i)
	}

	week.End = week.Days[len(week.Days)-1]

	return week
}

// WeekLabel formats the header of a week, e.g. "Jan 13 - Jan 19, 2025".
func WeekLabel(week model.Week) string {
	return fmt.Sprintf("%s - %s", week.Start.Format(constant.HeaderDay), week.End.Format(constant.HeaderDayYear))
}

func NightsLabel(nights int) string {
	if nights > 1 {
		return fmt.Sprintf("%d nights", nights)
	}

	return fmt.Sprintf("%d night", nights)
}

// AccentFor maps a booking status to its block color. Payment status plays no part.
func AccentFor(status bookingModel.Status) model.Accent {
	switch status {
	case bookingModel.StatusConfirmed:
		return model.AccentPrimary
	case bookingModel.StatusCheckedIn:
		return model.AccentSuccess
	case bookingModel.StatusCancelled:
		return model.AccentDanger
	default:
		return model.AccentNeutral
	}
}

// Render lays out the week containing currentDate. Rows follow the room order and blocks
// within a cell follow the booking order; inputs are never modified.
func Render(rooms []roomModel.Room, bookings []bookingModel.Booking, currentDate time.Time, opts model.RenderOptions) model.RenderPlan {
	week := WeekOf(currentDate)

	plan := model.RenderPlan{
		Week:     week,
		Label:    WeekLabel(week),
		Days:     make([]model.Day, len(week.Days)),
		Rows:     make([]model.Row, 0, len(rooms)),
		Bookings: []bookingModel.Booking{},
	}

	today := timezone.DateOf(opts.Today)
	for i, day := range week.Days {
		plan.Days[i] = model.Day{
			Date:    day,
			Weekday: day.Format("Mon"),
			Number:  day.Format("2"),
			IsToday: !opts.Today.IsZero() && day.Equal(today),
		}
	}

	spans := make([]bookingModel.Booking, len(bookings))
	for i, booking := range bookings {
		spans[i] = dateSpan(booking)
	}

	drawn := make([]bool, len(bookings))

	for _, room := range rooms {
		row := model.Row{Room: room, Cells: make([]model.Cell, len(week.Days))}

		for d, day := range week.Days {
			cell := model.Cell{Day: day, Blocks: []model.Block{}}
			slot := 0

			for i, booking := range bookings {
				if booking.RoomID != room.ID || !spans[i].Covers(day) {
					continue
				}

				drawn[i] = true

				if opts.MaxVisibleSlots > 0 && slot >= opts.MaxVisibleSlots {
					cell.Overflow++
				} else {
					cell.Blocks = append(cell.Blocks, newBlock(booking, spans[i], day, slot))
				}

				slot++
			}

			row.Cells[d] = cell
		}

		plan.Rows = append(plan.Rows, row)
	}

	for i, booking := range bookings {
		if drawn[i] {
			plan.Bookings = append(plan.Bookings, booking)
		}
	}

	return plan
}

// dateSpan copies booking with check-in and check-out reduced to calendar dates.
func dateSpan(booking bookingModel.Booking) bookingModel.Booking {
	booking.CheckIn = timezone.DateOf(booking.CheckIn)
	booking.CheckOut = timezone.DateOf(booking.CheckOut)

	return booking
}

func newBlock(booking, span bookingModel.Booking, day time.Time, slot int) model.Block {
	block := model.Block{
		Booking:       booking,
		Slot:          slot,
		FirstDay:      day.Equal(span.CheckIn),
		LastDay:       day.Equal(span.CheckOut),
		TopPercent:    slot * model.SlotOffsetPercent,
		BottomPercent: slot*model.SlotOffsetPercent + model.BlockHeightPercent,
		ZIndex:        model.BaseZIndex + slot,
		Accent:        AccentFor(booking.Status),
	}

	if block.FirstDay {
		block.Label = NightsLabel(span.Nights())
	}

	return block
}
