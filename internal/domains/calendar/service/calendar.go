package service

import (
	"errors"
	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/calendar/model"
	roomModel "hotelops/internal/domains/room/model"
	"hotelops/shared/constant"
	"hotelops/shared/timezone"
	"sync"
	"time"
)

var (
	ErrInvalidDirection = errors.New("direction must be previous, next or today")
	ErrBookingNotShown  = errors.New("booking is not shown in this week")
)

// Calendar is the navigation state of one workspace. It is never persisted.
type Calendar struct {
	mu      sync.RWMutex
	current time.Time
	clock   func() time.Time

	// OnBookingClick receives the booking behind a clicked block.
	OnBookingClick func(bookingModel.Booking)
}

// NewCalendar starts on the clock's today. A nil clock uses the application timezone.
func NewCalendar(clock func() time.Time, onBookingClick func(bookingModel.Booking)) *Calendar {
	if clock == nil {
		clock = timezone.Now
	}

	return &Calendar{
		current:        timezone.DateOf(clock()),
		clock:          clock,
		OnBookingClick: onBookingClick,
	}
}

func (c *Calendar) CurrentDate() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

// SetDate jumps to the week containing date.
func (c *Calendar) SetDate(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = timezone.DateOf(date)
}

// Navigate moves a week back or forward, or back to today, and returns the new current date.
func (c *Calendar) Navigate(direction model.Direction) (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch direction {
	case model.DirectionPrevious:
		c.current = c.current.AddDate(0, 0, -constant.DaysPerWeek)
	case model.DirectionNext:
		c.current = c.current.AddDate(0, 0, constant.DaysPerWeek)
	case model.DirectionToday:
		c.current = timezone.DateOf(c.clock())
	default:
		return c.current, ErrInvalidDirection
	}

	return c.current, nil
}

// Render draws the current week.
func (c *Calendar) Render(rooms []roomModel.Room, bookings []bookingModel.Booking, maxVisibleSlots int) model.RenderPlan {
	return Render(rooms, bookings, c.CurrentDate(), model.RenderOptions{
		Today:           c.clock(),
		MaxVisibleSlots: maxVisibleSlots,
	})
}

// Click hands the booking drawn in plan to OnBookingClick.
func (c *Calendar) Click(plan model.RenderPlan, bookingID string) (bookingModel.Booking, error) {
	booking, ok := plan.Find(bookingID)
	if !ok {
		return booking, ErrBookingNotShown
	}

	if c.OnBookingClick != nil {
		c.OnBookingClick(booking)
	}

	return booking, nil
}
