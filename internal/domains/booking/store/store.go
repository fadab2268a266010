// Package store caches the bookings and guests of a workspace and applies booking mutations.
package store

import (
	"context"
	"errors"
	"fmt"
	"hotelops/config"
	"hotelops/infras/gateway"
	"hotelops/infras/kafka"
	"hotelops/infras/otel"
	"hotelops/internal/domains/booking/model"
	"hotelops/shared"
	"hotelops/shared/constant"
	"hotelops/shared/dto"
	"hotelops/shared/failure"
	"hotelops/shared/sequence"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	MessageFetchBookingsFailed = "Failed to fetch bookings"
	MessageFetchGuestsFailed   = "Failed to fetch guests"
	MessageCreateFailed        = "Failed to create booking"
	MessageStatusFailed        = "Failed to update booking status"
	MessagePaymentFailed       = "Failed to update payment status"
	MessageStatusChanged       = "booking status changed meanwhile, reload and try again"
)

const (
	EventBookingCreated        = "booking.created"
	EventBookingStatusChanged  = "booking.status_changed"
	EventBookingPaymentChanged = "booking.payment_changed"
)

var errBookingNotFound = failure.NotFound(model.EntityName + " not found")

type Snapshot struct {
	Bookings []model.Booking
	Guests   []model.Guest
	Current  *model.Booking
	Loading  bool
	Error    string
}

type Store struct {
	mu      sync.RWMutex
	gateway gateway.Gateway
	events  kafka.Client
	otel    otel.Otel
	topic   string

	bookings []model.Booking
	guests   []model.Guest
	current  *model.Booking
	inflight int
	err      string

	bookingRequests sequence.Tracker
	guestRequests   sequence.Tracker
}

func New(gw gateway.Gateway, events kafka.Client, cfg *config.Config, ot otel.Otel) *Store {
	return &Store{
		gateway: gw,
		events:  events,
		otel:    ot,
		topic:   cfg.Kafka.Topics.Booking,
	}
}

// FetchBookings replaces the booking list with every booking of the property, by check-in.
func (s *Store) FetchBookings(ctx context.Context, propertyID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".booking.FetchBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.fetchBookings(ctx, dto.And(dto.Eq(model.FieldPropertyID, propertyID)))
}

// FetchBookingsByDateRange replaces the booking list with the bookings lying inside [start, end].
func (s *Store) FetchBookingsByDateRange(ctx context.Context, propertyID string, start, end time.Time) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".booking.FetchBookingsByDateRange")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.fetchBookings(ctx, dto.And(
		dto.Eq(model.FieldPropertyID, propertyID),
		dto.GreaterEq(model.FieldCheckIn, start),
		dto.LessEq(model.FieldCheckOut, end),
	))
}

func (s *Store) fetchBookings(ctx context.Context, filter dto.FilterGroup) error {
	id := s.bookingRequests.Issue()
	s.begin()

	var bookings []model.Booking

	err := s.gateway.Select(ctx, model.TableName, filter, dto.OrderBy(model.FieldCheckIn, dto.SortDirAsc), &bookings)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if !s.bookingRequests.IsLatest(id) {
		log.Debug().Uint64("request_id", id).Msg("discarding stale bookings response")

		return nil
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to fetch bookings")
		s.err = MessageFetchBookingsFailed

		return failure.Internal(MessageFetchBookingsFailed, err) // nolint:wrapcheck
	}

	s.bookings = bookings
	s.err = ""

	return nil
}

func (s *Store) FetchGuests(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".booking.FetchGuests")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id := s.guestRequests.Issue()
	s.begin()

	var guests []model.Guest

	err = s.gateway.Select(ctx, model.GuestTableName, dto.FilterGroup{}, dto.OrderBy(model.FieldGuestName, dto.SortDirAsc), &guests)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if !s.guestRequests.IsLatest(id) {
		return nil
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to fetch guests")
		s.err = MessageFetchGuestsFailed

		return failure.Internal(MessageFetchGuestsFailed, err) // nolint:wrapcheck
	}

	s.guests = guests
	s.err = ""

	return nil
}

// CreateBooking inserts the booking and appends the stored row to the list.
func (s *Store) CreateBooking(ctx context.Context, booking model.Booking) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".booking.CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.begin()

	var stored model.Booking

	err = s.gateway.Insert(ctx, model.TableName, booking, &stored)
	if err != nil {
		log.Error().Err(err).Str("room_id", booking.RoomID).Msg("failed to create booking")
		s.fail(MessageCreateFailed)

		return res, failure.Internal(MessageCreateFailed, err) // nolint:wrapcheck
	}

	s.mu.Lock()
	s.bookings = append(s.bookings, stored)
	s.inflight--
	s.err = ""
	s.mu.Unlock()

	s.publish(ctx, EventBookingCreated, stored.ID, stored)

	return stored, nil
}

// UpdateBookingStatus moves a booking of propertyID to status when the lifecycle allows
// it. The patch only applies while the stored status is still the one checked.
func (s *Store) UpdateBookingStatus(ctx context.Context, propertyID, bookingID string, status model.Status) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".booking.UpdateBookingStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.begin()

	booking, err := s.owned(ctx, propertyID, bookingID, MessageStatusFailed)
	if err != nil {
		s.fail(failure.Message(err, MessageStatusFailed))

		return err
	}

	if !booking.Status.CanTransition(status) {
		message := fmt.Sprintf("cannot change booking status from %s to %s", booking.Status, status)
		s.fail(message)

		return fmt.Errorf("%w: %w", failure.BadRequestFromString(message), model.ErrInvalidTransition)
	}

	filter := scoped(propertyID, bookingID, dto.Eq(model.FieldStatus, booking.Status))

	if err = s.patch(ctx, bookingID, shared.TransformFields(model.StatusPatch{Status: status}), filter); err != nil {
		if errors.Is(err, gateway.ErrNoRowsAffected) {
			s.fail(MessageStatusChanged)

			return failure.Conflict(MessageStatusChanged) // nolint:wrapcheck
		}

		s.fail(MessageStatusFailed)

		return failure.Internal(MessageStatusFailed, err) // nolint:wrapcheck
	}

	s.apply(bookingID, func(b *model.Booking) { b.Status = status })

	s.publish(ctx, EventBookingStatusChanged, bookingID, map[string]any{
		"id":   bookingID,
		"from": booking.Status,
		"to":   status,
	})

	return nil
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, propertyID, bookingID string, status model.PaymentStatus) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".booking.UpdatePaymentStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.begin()

	if _, err = s.owned(ctx, propertyID, bookingID, MessagePaymentFailed); err != nil {
		s.fail(failure.Message(err, MessagePaymentFailed))

		return err
	}

	err = s.patch(ctx, bookingID, shared.TransformFields(model.PaymentPatch{PaymentStatus: status}), scoped(propertyID, bookingID))
	if err != nil {
		if errors.Is(err, gateway.ErrNoRowsAffected) {
			s.fail(errBookingNotFound.Error())

			return errBookingNotFound
		}

		s.fail(MessagePaymentFailed)

		return failure.Internal(MessagePaymentFailed, err) // nolint:wrapcheck
	}

	s.apply(bookingID, func(b *model.Booking) { b.PaymentStatus = status })

	s.publish(ctx, EventBookingPaymentChanged, bookingID, map[string]any{
		"id":             bookingID,
		"payment_status": status,
	})

	return nil
}

// SelectBooking sets the booking shown in the detail view; nil clears it.
func (s *Store) SelectBooking(booking *model.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if booking == nil {
		s.current = nil

		return
	}

	selected := *booking
	s.current = &selected
}

func (s *Store) CurrentBooking() (model.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return model.Booking{}, false
	}

	return *s.current, true
}

// Find returns a booking by id, asking the gateway when it was never fetched.
func (s *Store) Find(ctx context.Context, bookingID string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".booking.Find")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.lookup(ctx, bookingID, MessageFetchBookingsFailed)
}

// Guest finds a fetched guest by id.
func (s *Store) Guest(id string) (model.Guest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.guests, func(g model.Guest) bool { return g.ID == id })
	if idx < 0 {
		return model.Guest{}, false
	}

	return s.guests[idx], true
}

// Booking finds a fetched booking by id.
func (s *Store) Booking(id string) (model.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.bookings, func(b model.Booking) bool { return b.ID == id })
	if idx < 0 {
		return model.Booking{}, false
	}

	return s.bookings[idx], true
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Bookings: slices.Clone(s.bookings),
		Guests:   slices.Clone(s.guests),
		Loading:  s.inflight > 0,
		Error:    s.err,
	}

	if s.current != nil {
		current := *s.current
		snap.Current = &current
	}

	return snap
}

// lookup returns the booking from the list, or from the gateway when it was never fetched.
func (s *Store) lookup(ctx context.Context, bookingID, message string) (model.Booking, error) {
	if booking, ok := s.Booking(bookingID); ok {
		return booking, nil
	}

	var found []model.Booking

	err := s.gateway.Select(ctx, model.TableName, dto.And(dto.Eq(model.FieldID, bookingID)), dto.QueryParams{Limit: 1}, &found)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to look up booking")

		return model.Booking{}, failure.Internal(message, err) // nolint:wrapcheck
	}

	if len(found) == 0 {
		return model.Booking{}, errBookingNotFound
	}

	return found[0], nil
}

// owned is lookup restricted to the bookings of propertyID.
func (s *Store) owned(ctx context.Context, propertyID, bookingID, message string) (model.Booking, error) {
	booking, err := s.lookup(ctx, bookingID, message)
	if err != nil {
		return booking, err
	}

	if booking.PropertyID != propertyID {
		return model.Booking{}, errBookingNotFound
	}

	return booking, nil
}

func scoped(propertyID, bookingID string, filters ...any) dto.FilterGroup {
	return dto.And(append([]any{
		dto.Eq(model.FieldID, bookingID),
		dto.Eq(model.FieldPropertyID, propertyID),
	}, filters...)...)
}

func (s *Store) patch(ctx context.Context, bookingID string, fields map[string]any, filter dto.FilterGroup) error {
	err := s.gateway.Update(ctx, model.TableName, fields, filter)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to patch booking")

		return fmt.Errorf("failed to patch booking: %w", err)
	}

	return nil
}

// apply patches the matching list entry and the selected booking, then settles the request.
func (s *Store) apply(bookingID string, change func(*model.Booking)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bookings {
		if s.bookings[i].ID == bookingID {
			change(&s.bookings[i])
		}
	}

	if s.current != nil && s.current.ID == bookingID {
		change(s.current)
	}

	s.inflight--
	s.err = ""
}

func (s *Store) publish(ctx context.Context, eventType, key string, value any) {
	err := s.events.SendMessages(context.WithoutCancel(ctx), s.topic, kafka.Message{
		Key:   key,
		Type:  eventType,
		Value: value,
	})
	if err != nil {
		log.Warn().Err(err).Str("event", eventType).Str("booking_id", key).Msg("failed to publish booking event")
	}
}

func (s *Store) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *Store) fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight--
	s.err = message
}
