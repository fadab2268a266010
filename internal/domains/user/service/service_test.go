package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotelops/config"
	"hotelops/infras/otel/mocks"
	"hotelops/internal/domains/user/model"
	"hotelops/internal/domains/user/model/dto"
	userMocks "hotelops/internal/domains/user/repository/mocks"
	"hotelops/internal/domains/user/service"
	"hotelops/shared/cache"
	cacheMocks "hotelops/shared/cache/mocks"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	"hotelops/shared/password"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var desk = model.User{ID: "u2", AuthID: "a2", Email: "desk@hotel.test", Name: "Front Desk", Role: model.RoleStaff}

type fixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	f := &fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func asAdmin(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestUserService_Create(t *testing.T) {
	req := dto.CreateUserRequest{Email: " Desk@Hotel.test", Password: "s3cret-pass", Name: "Front Desk", Role: model.RoleStaff}

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "creates credential and profile",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().EmailTaken(gomock.Any(), req.Email).Return(false, nil)
				f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, credential model.Credential, user model.User) error {
						assert.Equal(t, "desk@hotel.test", credential.Email)
						assert.Equal(t, credential.ID, user.AuthID)
						assert.NoError(t, password.Verify("s3cret-pass", credential.PasswordHash))
						assert.Nil(t, user.PropertyID)

						return nil
					})
				f.cache.EXPECT().Clear(gomock.Any(), "user:gets*").Return(nil)
			},
		},
		{
			name: "email taken",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().EmailTaken(gomock.Any(), req.Email).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "concurrent signup hits the unique index",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().EmailTaken(gomock.Any(), req.Email).Return(false, nil)
				f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "database down",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().EmailTaken(gomock.Any(), req.Email).Return(false, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "desk@hotel.test", res.Email)
			assert.Equal(t, "staff", res.Role)
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.User{desk}, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 300).Return(nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.And(gDto.Eq(model.FieldRole, model.RoleStaff)))

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "Front Desk", res.Users[0].Name)
}

func TestUserService_Get(t *testing.T) {
	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), "user:get:u9", gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

	_, err := f.svc.Get(context.Background(), "u9")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestUserService_Update(t *testing.T) {
	propertyID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	tests := []struct {
		name      string
		actor     string
		req       dto.UpdateUserRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name:  "promotes and binds to a property",
			actor: "u1",
			req:   dto.UpdateUserRequest{Role: model.RoleManager, PropertyID: &propertyID},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(desk, nil)
				f.repo.EXPECT().Update(gomock.Any(), map[string]any{"role": model.RoleManager, "property_id": &propertyID}, gomock.Any()).Return(nil)
				f.cache.EXPECT().Delete(gomock.Any(), "user:get:u2").Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "user:gets*").Return(nil)
			},
		},
		{
			name:  "clears the property",
			actor: "u1",
			req:   dto.UpdateUserRequest{ClearProperty: true},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(desk, nil)
				f.repo.EXPECT().Update(gomock.Any(), map[string]any{"property_id": nil}, gomock.Any()).Return(nil)
				f.cache.EXPECT().Delete(gomock.Any(), "user:get:u2").Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "user:gets*").Return(nil)
			},
		},
		{
			name:  "unknown property",
			actor: "u1",
			req:   dto.UpdateUserRequest{PropertyID: &propertyID},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(desk, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "own role",
			actor: "u2",
			req:   dto.UpdateUserRequest{Role: model.RoleAdmin},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(desk, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "empty patch",
			actor:     "u1",
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(asAdmin(tt.actor), "u2", tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	t.Run("deletes the credential", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(desk, nil)
		f.repo.EXPECT().DeleteAccount(gomock.Any(), "a2").Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), "user:get:u2").Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), "user:gets*").Return(nil)

		assert.NoError(t, f.svc.Delete(asAdmin("u1"), "u2"))
	})

	t.Run("own account", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(asAdmin("u2"), "u2")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	hash, err := password.Hash("old-pass-1")
	require.NoError(t, err)

	req := dto.ChangePasswordRequest{CurrentPassword: "old-pass-1", NewPassword: "new-pass-22"}

	t.Run("replaces the hash", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(desk, nil)
		f.repo.EXPECT().GetCredential(gomock.Any(), "a2").Return(model.Credential{ID: "a2", PasswordHash: hash}, nil)
		f.repo.EXPECT().SetPassword(gomock.Any(), "a2", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, newHash string) error {
				assert.NoError(t, password.Verify("new-pass-22", newHash))

				return nil
			})

		assert.NoError(t, f.svc.ChangePassword(context.Background(), "u2", req))
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(desk, nil)
		f.repo.EXPECT().GetCredential(gomock.Any(), "a2").Return(model.Credential{ID: "a2", PasswordHash: hash}, nil)

		err := f.svc.ChangePassword(context.Background(), "u2", dto.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "new-pass-22"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, service.MessageWrongPassword, failure.Message(err, ""))
	})
}
