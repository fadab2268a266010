// Package service administers operator accounts: sign-in credentials, roles and
// the property an operator is bound to.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/user/model"
	"hotelops/internal/domains/user/model/dto"
	"hotelops/internal/domains/user/repository"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	"hotelops/shared/password"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"

	MessageUserNotFound      = "user not found"
	MessageEmailTaken        = "email already registered"
	MessagePropertyNotFound  = "property not found"
	MessageOwnRole           = "you cannot change your own role"
	MessageOwnAccount        = "you cannot delete your own account"
	MessageNothingToUpdate   = "nothing to update"
	MessageWrongPassword     = "current password is incorrect"
	messageFetchUsersFailed  = "Failed to fetch users"
	messageUpdateUsersFailed = "Failed to save user"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateUserRequest) error
	Delete(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, id string, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// saveFailure maps constraint violations to client errors.
func saveFailure(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case constant.PqErrorCodeUniqueViolation:
			return failure.BadRequestFromString(MessageEmailTaken)
		case constant.PqErrorCodeFkViolation:
			return failure.BadRequestFromString(MessagePropertyNotFound)
		}
	}

	return failure.Internal(messageUpdateUsersFailed, err)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	taken, err := s.repo.EmailTaken(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to check email")

		return res, failure.Internal(messageFetchUsersFailed, err)
	}

	if taken {
		return res, failure.BadRequestFromString(MessageEmailTaken)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, failure.Internal(messageUpdateUsersFailed, err)
	}

	credential, user := req.ToModel(hash)

	if err = s.repo.Create(ctx, credential, user); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to create user")

		return res, saveFailure(err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllUser)

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, failure.Internal(messageFetchUsersFailed, err)
	}

	users, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, failure.Internal(messageFetchUsersFailed, err)
	}

	res.FromModels(users, total, params.Limit)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("cacheKey", cacheKey).Msg("failed to cache users")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("cacheKey", cacheKey).Msg("failed to cache user")
	}

	return res, nil
}

// Update patches a profile. Operators cannot change their own role.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	patch := shared.TransformFields(req)
	if req.ClearProperty {
		patch[model.FieldPropertyID] = nil
	}

	if len(patch) == 0 {
		return failure.BadRequestFromString(MessageNothingToUpdate)
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if actor, _ := ctx.Value(constant.ContextKeyUserID).(string); actor == id && req.Role != "" && req.Role != user.Role {
		return failure.Forbidden(MessageOwnRole)
	}

	if err = s.repo.Update(ctx, patch, gDto.And(gDto.Eq(model.FieldID, id))); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to update user")

		return saveFailure(err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete removes the account and its credential. Sessions already issued to it
// lapse on their own.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if actor, _ := ctx.Value(constant.ContextKeyUserID).(string); actor == id {
		return failure.Forbidden(MessageOwnAccount)
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.DeleteAccount(ctx, user.AuthID); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to delete user")

		return failure.Internal(messageUpdateUsersFailed, err)
	}

	s.invalidate(ctx, id)

	return nil
}

// ChangePassword replaces the password of operator id after checking the current one.
func (s *serviceImpl) ChangePassword(ctx context.Context, id string, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	credential, err := s.repo.GetCredential(ctx, user.AuthID)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to get credential")

		return failure.Internal(messageFetchUsersFailed, err)
	}

	if err = password.Verify(req.CurrentPassword, credential.PasswordHash); err != nil {
		if errors.Is(err, password.ErrInvalidPassword) {
			return failure.BadRequestFromString(MessageWrongPassword)
		}

		return failure.Internal(messageUpdateUsersFailed, err)
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return failure.Internal(messageUpdateUsersFailed, err)
	}

	if err = s.repo.SetPassword(ctx, user.AuthID, hash); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to update password")

		return failure.Internal(messageUpdateUsersFailed, err)
	}

	log.Info().Str("user_id", id).Msg("password changed")

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, gDto.And(gDto.Eq(model.FieldID, id)))
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

		return user, failure.Internal(messageFetchUsersFailed, err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound(MessageUserNotFound)
	}

	return user, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
		log.Warn().Err(err).Str("user_id", id).Msg("failed to delete user from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllUser)
}
