package dto

import (
	"hotelops/internal/domains/booking/model"
	roomDto "hotelops/internal/domains/room/model/dto"
	roomModel "hotelops/internal/domains/room/model"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	gDto "hotelops/shared/dto"
	gModel "hotelops/shared/model"
	"hotelops/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID        string              `json:"room_id"        validate:"required"`
	GuestID       string              `json:"guest_id"       validate:"required"`
	CheckIn       string              `json:"check_in"       validate:"required,date"`
	CheckOut      string              `json:"check_out"      validate:"required,date"`
	Status        model.Status        `json:"status"         validate:"omitempty,enum"`
	PaymentStatus model.PaymentStatus `json:"payment_status" validate:"omitempty,enum"`
	TotalAmount   float64             `json:"total_amount"   validate:"gte=0"`
}

// Dates parses check-in and check-out and enforces check_out > check_in.
func (c *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(c.CheckIn)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_in must be a date in YYYY-MM-DD format") //nolint:wrapcheck
	}

	checkOut, err = timezone.ParseDate(c.CheckOut)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_out must be a date in YYYY-MM-DD format") //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.BadRequestFromString("check_out must be after check_in") //nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

func (c *CreateBookingRequest) ToModel(propertyID string) (model.Booking, error) {
	checkIn, checkOut, err := c.Dates()
	if err != nil {
		return model.Booking{}, err
	}

	status := model.StatusConfirmed
	if c.Status != "" {
		status = c.Status
	}

	paymentStatus := model.PaymentPending
	if c.PaymentStatus != "" {
		paymentStatus = c.PaymentStatus
	}

	return model.Booking{
		ID:            uuid.NewString(),
		PropertyID:    propertyID,
		RoomID:        c.RoomID,
		GuestID:       c.GuestID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Status:        status,
		PaymentStatus: paymentStatus,
		TotalAmount:   c.TotalAmount,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}, nil
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,enum"`
}

type UpdatePaymentRequest struct {
	PaymentStatus model.PaymentStatus `json:"payment_status" validate:"required,enum"`
}

// DateRangeRequest is the optional ?from=&to= window of a booking listing.
type DateRangeRequest struct {
	From string `json:"from" validate:"omitempty,date"`
	To   string `json:"to"   validate:"omitempty,date"`
}

// Bounds parses the range; ok is false when no range was given.
func (d *DateRangeRequest) Bounds() (from, to time.Time, ok bool, err error) {
	if d.From == constant.Empty && d.To == constant.Empty {
		return from, to, false, nil
	}

	if d.From == constant.Empty || d.To == constant.Empty {
		return from, to, false, failure.BadRequestFromString("from and to must be given together") //nolint:wrapcheck
	}

	from, err = timezone.ParseDate(d.From)
	if err != nil {
		return from, to, false, failure.BadRequestFromString("from must be a date in YYYY-MM-DD format") //nolint:wrapcheck
	}

	to, err = timezone.ParseDate(d.To)
	if err != nil {
		return from, to, false, failure.BadRequestFromString("to must be a date in YYYY-MM-DD format") //nolint:wrapcheck
	}

	if to.Before(from) {
		return from, to, false, failure.BadRequestFromString("to must not be before from") //nolint:wrapcheck
	}

	return from, to, true, nil
}

type BookingResponse struct {
	ID            string  `json:"id"`
	PropertyID    string  `json:"property_id"`
	RoomID        string  `json:"room_id"`
	GuestID       string  `json:"guest_id"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int     `json:"nights"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	TotalAmount   float64 `json:"total_amount"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.PropertyID = m.PropertyID
	r.RoomID = m.RoomID
	r.GuestID = m.GuestID
	r.CheckIn = m.CheckIn.Format(constant.DayFormat)
	r.CheckOut = m.CheckOut.Format(constant.DayFormat)
	r.Nights = m.Nights()
	r.Status = string(m.Status)
	r.PaymentStatus = string(m.PaymentStatus)
	r.TotalAmount = m.TotalAmount
	r.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Loading  bool              `json:"loading"`
	Error    string            `json:"error,omitempty"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.Bookings = make([]BookingResponse, len(models))
	for i, m := range models {
		r.Bookings[i].FromModel(m)
	}
}

type GuestResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IDType      string `json:"id_type"`
	IDNumber    string `json:"id_number"`
	Nationality string `json:"nationality"`
	Address     string `json:"address"`
}

func (r *GuestResponse) FromModel(m model.Guest) {
	r.ID = m.ID
	r.Name = m.Name
	r.Email = m.Email
	r.Phone = m.Phone
	r.IDType = m.IDType
	r.IDNumber = m.IDNumber
	r.Nationality = m.Nationality
	r.Address = m.Address
}

type GetGuestsResponse struct {
	Guests []GuestResponse `json:"guests"`
	Error  string          `json:"error,omitempty"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest) {
	r.Guests = make([]GuestResponse, len(models))
	for i, m := range models {
		r.Guests[i].FromModel(m)
	}
}

// BookingDetailResponse is the booking panel: the booking, its room and guest when
// they are loaded, and the statuses it may move to.
type BookingDetailResponse struct {
	Booking      BookingResponse       `json:"booking"`
	Room         *roomDto.RoomResponse `json:"room,omitempty"`
	Guest        *GuestResponse        `json:"guest,omitempty"`
	NextStatuses []string              `json:"next_statuses"`
}

func (r *BookingDetailResponse) FromModel(booking model.Booking, room *roomModel.Room, guest *model.Guest) {
	r.Booking.FromModel(booking)

	if room != nil {
		r.Room = &roomDto.RoomResponse{}
		r.Room.FromModel(*room)
	}

	if guest != nil {
		r.Guest = &GuestResponse{}
		r.Guest.FromModel(*guest)
	}

	next := booking.Status.Next()

	r.NextStatuses = make([]string, len(next))
	for i, status := range next {
		r.NextStatuses[i] = string(status)
	}
}
