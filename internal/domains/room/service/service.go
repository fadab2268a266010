// Package service manages the rooms of a property.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"

	"hotelops/config"
	"hotelops/infras/otel"
	bookingModel "hotelops/internal/domains/booking/model"
	bookingRepository "hotelops/internal/domains/booking/repository"
	"hotelops/internal/domains/room/model"
	"hotelops/internal/domains/room/model/dto"
	"hotelops/internal/domains/room/repository"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"

	MessageRoomNotFound      = "room not found"
	MessageRoomNumberTaken   = "room number already exists"
	MessageRoomHasBookings   = "room has active bookings"
	MessageNothingToUpdate   = "nothing to update"
	messageFetchRoomsFailed  = "Failed to fetch rooms"
	messageUpdateRoomsFailed = "Failed to update room"
)

type Room interface {
	Create(ctx context.Context, propertyID string, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, propertyID string, params gDto.QueryParams, filter gDto.FilterGroup) (dto.ListRoomsResponse, error)
	Get(ctx context.Context, propertyID, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, propertyID, id string, req dto.UpdateRoomRequest) error
	Delete(ctx context.Context, propertyID, id string) error
}

type serviceImpl struct {
	repo     repository.Room
	bookings bookingRepository.Booking
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Room, bookings bookingRepository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func byID(propertyID, id string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.FieldID, id), gDto.Eq(model.FieldPropertyID, propertyID))
}

// scoped narrows filter to the rooms of propertyID.
func scoped(propertyID string, filter gDto.FilterGroup) gDto.FilterGroup {
	group := gDto.And(gDto.Eq(model.FieldPropertyID, propertyID))
	if !filter.Empty() {
		group.Filters = append(group.Filters, filter)
	}

	return group
}

func listPrefix(propertyID string) string {
	return shared.BuildCacheKey(cacheGetAllRoom, propertyID, constant.Empty)
}

func (s *serviceImpl) Create(ctx context.Context, propertyID string, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room := req.ToModel(propertyID)

	if err = s.ensureNumberFree(ctx, propertyID, room.RoomNumber, constant.Empty); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to create room")

		return res, failure.Internal(messageUpdateRoomsFailed, err)
	}

	shared.InvalidateCaches(ctx, s.cache, listPrefix(propertyID))

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, propertyID string, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.ListRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = scoped(propertyID, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(listPrefix(propertyID), params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, failure.Internal(messageFetchRoomsFailed, err)
	}

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, failure.Internal(messageFetchRoomsFailed, err)
	}

	res.FromModels(rooms, total, params.Limit)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("cacheKey", cacheKey).Msg("failed to cache rooms")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, propertyID, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, propertyID, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	room, err := s.find(ctx, propertyID, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("cacheKey", cacheKey).Msg("failed to cache room")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, propertyID, id string, req dto.UpdateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	patch := shared.TransformFields(req)
	if len(patch) == 0 {
		return failure.BadRequestFromString(MessageNothingToUpdate)
	}

	current, err := s.find(ctx, propertyID, id)
	if err != nil {
		return err
	}

	if req.RoomNumber != constant.Empty && req.RoomNumber != current.RoomNumber {
		if err = s.ensureNumberFree(ctx, propertyID, req.RoomNumber, id); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, patch, byID(propertyID, id)); err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to update room")

		return failure.Internal(messageUpdateRoomsFailed, err)
	}

	s.invalidate(ctx, propertyID, id)

	return nil
}

// Delete refuses while a confirmed or checked-in booking still holds the room.
func (s *serviceImpl) Delete(ctx context.Context, propertyID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, propertyID, id); err != nil {
		return err
	}

	held, err := s.bookings.Exist(ctx, gDto.And(
		gDto.Eq(bookingModel.FieldRoomID, id),
		gDto.Filter{
			Field:    bookingModel.FieldStatus,
			Value:    []string{string(bookingModel.StatusConfirmed), string(bookingModel.StatusCheckedIn)},
			Operator: gDto.FilterOperatorIn,
		},
	))
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to check room bookings")

		return failure.Internal(messageUpdateRoomsFailed, err)
	}

	if held {
		return failure.Conflict(MessageRoomHasBookings)
	}

	if err = s.repo.Delete(ctx, byID(propertyID, id)); err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to delete room")

		return failure.Internal(messageUpdateRoomsFailed, err)
	}

	s.invalidate(ctx, propertyID, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, propertyID, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, byID(propertyID, id))
	if err != nil {
		log.Error().Err(err).Str("room_id", id).Msg("failed to get room")

		return room, failure.Internal(messageFetchRoomsFailed, err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(MessageRoomNotFound)
	}

	return room, nil
}

// ensureNumberFree checks the room number against the other rooms of the property.
func (s *serviceImpl) ensureNumberFree(ctx context.Context, propertyID, number, exceptID string) error {
	filters := []any{
		gDto.Eq(model.FieldPropertyID, propertyID),
		gDto.Eq(model.FieldRoomNumber, number),
	}

	if exceptID != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldID, Value: exceptID, Operator: gDto.FilterOperatorNotEq})
	}

	taken, err := s.repo.Exist(ctx, gDto.FilterGroup{Filters: filters})
	if err != nil {
		log.Error().Err(err).Str("room_number", number).Msg("failed to check room number")

		return failure.Internal(messageFetchRoomsFailed, err)
	}

	if taken {
		return failure.BadRequestFromString(MessageRoomNumberTaken)
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, propertyID, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRoom, propertyID, id)); err != nil {
		log.Warn().Err(err).Str("room_id", id).Msg("failed to delete room from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, listPrefix(propertyID))
}
