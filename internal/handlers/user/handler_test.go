package user_test

import (
	"context"
	otelMocks "hotelops/infras/otel/mocks"
	"hotelops/internal/domains/user/model"
	"hotelops/internal/domains/user/model/dto"
	"hotelops/internal/domains/user/service"
	serviceMocks "hotelops/internal/domains/user/service/mocks"
	"hotelops/internal/handlers/user"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*serviceMocks.MockUser, chi.Router) {
	t.Helper()

	svc := serviceMocks.NewMockUser(gomock.NewController(t))
	handler := user.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	return recorder
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *serviceMocks.MockUser)
		wantCode  int
	}{
		{
			name: "created",
			body: `{"email":"desk@hotel.test","password":"s3cret-pass","name":"Front Desk","role":"staff"}`,
			setupMock: func(svc *serviceMocks.MockUser) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.UserResponse{ID: "u2"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "unknown role",
			body:      `{"email":"desk@hotel.test","password":"s3cret-pass","name":"Front Desk","role":"owner"}`,
			setupMock: func(*serviceMocks.MockUser) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "short password",
			body:      `{"email":"desk@hotel.test","password":"short","name":"Front Desk","role":"staff"}`,
			setupMock: func(*serviceMocks.MockUser) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "email taken",
			body: `{"email":"desk@hotel.test","password":"s3cret-pass","name":"Front Desk","role":"staff"}`,
			setupMock: func(svc *serviceMocks.MockUser) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.UserResponse{}, failure.BadRequestFromString(service.MessageEmailTaken))
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodPost, "/users", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestGetUsers(t *testing.T) {
	t.Run("filters by role", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error) {
				assert.Equal(t, model.FieldName, params.SortBy)
				assert.Equal(t, []string{model.FieldRole}, filter.Fields())

				return dto.GetUsersResponse{}, nil
			})

		recorder := serve(router, http.MethodGet, "/users?role=manager", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodGet, "/users?role=owner", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("conflicting property fields", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPatch, "/users/u2",
			`{"property_id":"7c9e6679-7425-40de-944b-e07fc1f90ae7","clear_property":true}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("own role", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().Update(gomock.Any(), "u2", dto.UpdateUserRequest{Role: model.RoleAdmin}).
			Return(failure.Forbidden(service.MessageOwnRole))

		recorder := serve(router, http.MethodPatch, "/users/u2", `{"role":"admin"}`)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	svc, router := newRouter(t)
	svc.EXPECT().Delete(gomock.Any(), "u2").Return(nil)

	recorder := serve(router, http.MethodDelete, "/users/u2", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestChangePassword(t *testing.T) {
	body := `{"current_password":"old-pass-1","new_password":"new-pass-22"}`

	t.Run("changes own password", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().ChangePassword(gomock.Any(), "u2", dto.ChangePasswordRequest{CurrentPassword: "old-pass-1", NewPassword: "new-pass-22"}).Return(nil)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPut, "/users/me/password", strings.NewReader(body))
		router.ServeHTTP(recorder, request.WithContext(context.WithValue(request.Context(), constant.ContextKeyUserID, "u2")))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("same password", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPut, "/users/me/password", strings.NewReader(`{"current_password":"old-pass-1","new_password":"old-pass-1"}`))
		router.ServeHTTP(recorder, request.WithContext(context.WithValue(request.Context(), constant.ContextKeyUserID, "u2")))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPut, "/users/me/password", body)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
