// Package store caches the properties an operator can see and the rooms of the current one.
package store

import (
	"context"
	"hotelops/infras/gateway"
	"hotelops/infras/otel"
	"hotelops/internal/domains/property/model"
	roomModel "hotelops/internal/domains/room/model"
	"hotelops/shared/constant"
	"hotelops/shared/dto"
	"hotelops/shared/failure"
	"hotelops/shared/sequence"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	MessageFetchPropertiesFailed = "Failed to fetch properties"
	MessageFetchRoomsFailed      = "Failed to fetch rooms"
	MessageRoomNotInProperty     = "room does not belong to the current property"
)

type Snapshot struct {
	Properties []model.Property
	Current    *model.Property
	Rooms      []roomModel.Room
	Loading    bool
	Error      string
}

type Store struct {
	mu      sync.RWMutex
	gateway gateway.Gateway
	otel    otel.Otel

	properties []model.Property
	current    *model.Property
	rooms      []roomModel.Room
	inflight   int
	err        string

	propertyRequests sequence.Tracker
	roomRequests     sequence.Tracker
}

func New(gw gateway.Gateway, ot otel.Otel) *Store {
	return &Store{
		gateway: gw,
		otel:    ot,
	}
}

// FetchProperties replaces the property list. The first property becomes current when none is selected.
func (s *Store) FetchProperties(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".property.FetchProperties")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id := s.propertyRequests.Issue()
	s.begin()

	var properties []model.Property

	err = s.gateway.Select(ctx, model.TableName, dto.FilterGroup{}, dto.OrderBy(model.FieldName, dto.SortDirAsc), &properties)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if !s.propertyRequests.IsLatest(id) {
		log.Debug().Uint64("request_id", id).Msg("discarding stale properties response")

		return nil
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to fetch properties")
		s.err = MessageFetchPropertiesFailed

		return failure.Internal(MessageFetchPropertiesFailed, err) // nolint:wrapcheck
	}

	s.properties = properties
	s.err = ""

	if s.current == nil && len(properties) > 0 {
		first := properties[0]
		s.current = &first
	}

	return nil
}

// FetchRooms replaces the room list with the rooms of propertyID.
func (s *Store) FetchRooms(ctx context.Context, propertyID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".property.FetchRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("property_id", propertyID)

	id := s.roomRequests.Issue()
	s.begin()

	var rooms []roomModel.Room

	err = s.gateway.Select(ctx, roomModel.TableName,
		dto.And(dto.Eq(roomModel.FieldPropertyID, propertyID)),
		dto.OrderBy(roomModel.FieldRoomNumber, dto.SortDirAsc),
		&rooms,
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if !s.roomRequests.IsLatest(id) {
		log.Debug().Uint64("request_id", id).Str("property_id", propertyID).Msg("discarding stale rooms response")

		return nil
	}

	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to fetch rooms")
		s.err = MessageFetchRoomsFailed

		return failure.Internal(MessageFetchRoomsFailed, err) // nolint:wrapcheck
	}

	s.rooms = rooms
	s.err = ""

	return nil
}

// Room resolves a room of propertyID, loading the rooms of that property when the
// cached list does not hold it.
func (s *Store) Room(ctx context.Context, propertyID, roomID string) (roomModel.Room, error) {
	if room, ok := s.cachedRoom(propertyID, roomID); ok {
		return room, nil
	}

	if err := s.FetchRooms(ctx, propertyID); err != nil {
		return roomModel.Room{}, err
	}

	if room, ok := s.cachedRoom(propertyID, roomID); ok {
		return room, nil
	}

	return roomModel.Room{}, failure.BadRequestFromString(MessageRoomNotInProperty) // nolint:wrapcheck
}

func (s *Store) cachedRoom(propertyID, roomID string) (roomModel.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.rooms, func(r roomModel.Room) bool { return r.ID == roomID && r.PropertyID == propertyID })
	if idx < 0 {
		return roomModel.Room{}, false
	}

	return s.rooms[idx], true
}

// SetCurrentProperty switches the current property and loads its rooms.
func (s *Store) SetCurrentProperty(ctx context.Context, property model.Property) error {
	s.mu.Lock()
	s.current = &property
	s.mu.Unlock()

	return s.FetchRooms(ctx, property.ID)
}

// SelectProperty switches to a property of the fetched list by id.
func (s *Store) SelectProperty(ctx context.Context, propertyID string) error {
	s.mu.RLock()
	idx := slices.IndexFunc(s.properties, func(p model.Property) bool { return p.ID == propertyID })

	var property model.Property
	if idx >= 0 {
		property = s.properties[idx]
	}
	s.mu.RUnlock()

	if idx < 0 {
		return failure.NotFound(model.EntityName + " not found") // nolint:wrapcheck
	}

	return s.SetCurrentProperty(ctx, property)
}

// Current returns the current property, if any.
func (s *Store) Current() (model.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return model.Property{}, false
	}

	return *s.current, true
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Properties: slices.Clone(s.properties),
		Rooms:      slices.Clone(s.rooms),
		Loading:    s.inflight > 0,
		Error:      s.err,
	}

	if s.current != nil {
		current := *s.current
		snap.Current = &current
	}

	return snap
}

func (s *Store) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}
