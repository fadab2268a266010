// Package workspace holds the per-session application state: the signed-in operator,
// the entity stores, the calendar navigation and the POS cart.
package workspace

import (
	"context"
	"hotelops/config"
	"hotelops/infras/gateway"
	"hotelops/infras/kafka"
	"hotelops/infras/otel"
	bookingModel "hotelops/internal/domains/booking/model"
	bookingStore "hotelops/internal/domains/booking/store"
	calendarService "hotelops/internal/domains/calendar/service"
	posModel "hotelops/internal/domains/pos/model"
	propertyModel "hotelops/internal/domains/property/model"
	propertyStore "hotelops/internal/domains/property/store"
	sessionStore "hotelops/internal/domains/session/store"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
	"net/http"
	"sync"
	"time"
)

type Workspace struct {
	Session    *sessionStore.Store
	Properties *propertyStore.Store
	Bookings   *bookingStore.Store
	Calendar   *calendarService.Calendar
	Cart       *posModel.Cart

	clock    func() time.Time
	mu       sync.Mutex
	lastSeen time.Time
}

// Deps are the shared services every workspace is built on.
type Deps struct {
	Gateway gateway.Gateway
	Events  kafka.Client
	Config  *config.Config
	Otel    otel.Otel
	Clock   func() time.Time
}

func New(deps Deps) *Workspace {
	if deps.Clock == nil {
		deps.Clock = timezone.Now
	}

	ws := &Workspace{
		Session:    sessionStore.New(deps.Gateway, deps.Otel),
		Properties: propertyStore.New(deps.Gateway, deps.Otel),
		Bookings:   bookingStore.New(deps.Gateway, deps.Events, deps.Config, deps.Otel),
		Cart:       posModel.NewCart(),
		clock:      deps.Clock,
	}

	ws.Calendar = calendarService.NewCalendar(deps.Clock, ws.selectBooking)

	return ws
}

// Now is the workspace clock, in the application timezone.
func (w *Workspace) Now() time.Time {
	return w.clock()
}

// SelectedBooking is the booking opened from the calendar or the booking list.
func (w *Workspace) SelectedBooking() (bookingModel.Booking, bool) {
	return w.Bookings.CurrentBooking()
}

// Property returns the current property, loading the property list on first use.
// An operator bound to a property starts on it.
func (w *Workspace) Property(ctx context.Context) (propertyModel.Property, error) {
	if current, ok := w.Properties.Current(); ok {
		return current, nil
	}

	if err := w.Properties.FetchProperties(ctx); err != nil {
		return propertyModel.Property{}, err
	}

	if user := w.Session.Snapshot().User; user != nil && user.PropertyID != nil && *user.PropertyID != constant.Empty {
		if err := w.Properties.SelectProperty(ctx, *user.PropertyID); err != nil && failure.GetCode(err) != http.StatusNotFound {
			return propertyModel.Property{}, err
		}
	}

	current, ok := w.Properties.Current()
	if !ok {
		return propertyModel.Property{}, failure.NoPropertySelected // nolint:wrapcheck
	}

	return current, nil
}

func (w *Workspace) selectBooking(booking bookingModel.Booking) {
	w.Bookings.SelectBooking(&booking)
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastSeen = now
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()

	return now.Sub(w.lastSeen)
}
