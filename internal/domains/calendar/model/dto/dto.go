package dto

import (
	bookingDto "hotelops/internal/domains/booking/model/dto"
	"hotelops/internal/domains/calendar/model"
	"hotelops/shared/constant"
)

type NavigateRequest struct {
	Direction model.Direction `json:"direction" validate:"required,enum"`
}

type NavigateResponse struct {
	CurrentDate string `json:"current_date"`
	WeekStart   string `json:"week_start"`
	WeekEnd     string `json:"week_end"`
	Label       string `json:"label"`
}

func (r *NavigateResponse) FromWeek(current string, week model.Week, label string) {
	r.CurrentDate = current
	r.WeekStart = week.Start.Format(constant.DayFormat)
	r.WeekEnd = week.End.Format(constant.DayFormat)
	r.Label = label
}

type DayResponse struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Number  string `json:"number"`
	IsToday bool   `json:"is_today"`
}

type BlockResponse struct {
	BookingID     string `json:"booking_id"`
	Status        string `json:"status"`
	Slot          int    `json:"slot"`
	FirstDay      bool   `json:"first_day"`
	LastDay       bool   `json:"last_day"`
	Label         string `json:"label,omitempty"`
	TopPercent    int    `json:"top_percent"`
	BottomPercent int    `json:"bottom_percent"`
	ZIndex        int    `json:"z_index"`
	Accent        string `json:"accent"`
}

type CellResponse struct {
	Date     string          `json:"date"`
	Blocks   []BlockResponse `json:"blocks"`
	Overflow int             `json:"overflow,omitempty"`
}

type RowResponse struct {
	RoomID     string         `json:"room_id"`
	RoomNumber string         `json:"room_number"`
	RoomType   string         `json:"room_type"`
	Cells      []CellResponse `json:"cells"`
}

type CalendarResponse struct {
	CurrentDate string                       `json:"current_date"`
	Label       string                       `json:"label"`
	Days        []DayResponse                `json:"days"`
	Rows        []RowResponse                `json:"rows"`
	Bookings    []bookingDto.BookingResponse `json:"bookings"`
	Loading     bool                         `json:"loading"`
	Error       string                       `json:"error,omitempty"`
}

func (r *CalendarResponse) FromPlan(current string, plan model.RenderPlan) {
	r.CurrentDate = current
	r.Label = plan.Label

	r.Days = make([]DayResponse, len(plan.Days))
	for i, day := range plan.Days {
		r.Days[i] = DayResponse{
			Date:    day.Date.Format(constant.DayFormat),
			Weekday: day.Weekday,
			Number:  day.Number,
			IsToday: day.IsToday,
		}
	}

	r.Rows = make([]RowResponse, len(plan.Rows))
	for i, row := range plan.Rows {
		r.Rows[i] = RowResponse{
			RoomID:     row.Room.ID,
			RoomNumber: row.Room.RoomNumber,
			RoomType:   row.Room.Type,
			Cells:      make([]CellResponse, len(row.Cells)),
		}

		for j, cell := range row.Cells {
			blocks := make([]BlockResponse, len(cell.Blocks))
			for k, block := range cell.Blocks {
				blocks[k] = BlockResponse{
					BookingID:     block.Booking.ID,
					Status:        string(block.Booking.Status),
					Slot:          block.Slot,
					FirstDay:      block.FirstDay,
					LastDay:       block.LastDay,
					Label:         block.Label,
					TopPercent:    block.TopPercent,
					BottomPercent: block.BottomPercent,
					ZIndex:        block.ZIndex,
					Accent:        string(block.Accent),
				}
			}

			r.Rows[i].Cells[j] = CellResponse{
				Date:     cell.Day.Format(constant.DayFormat),
				Blocks:   blocks,
				Overflow: cell.Overflow,
			}
		}
	}

	r.Bookings = make([]bookingDto.BookingResponse, len(plan.Bookings))
	for i, booking := range plan.Bookings {
		r.Bookings[i].FromModel(booking)
	}
}
