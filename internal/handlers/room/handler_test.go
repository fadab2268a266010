package room_test

import (
	"context"
	"errors"
	"hotelops/config"
	gatewayMocks "hotelops/infras/gateway/mocks"
	kafkaMocks "hotelops/infras/kafka/mocks"
	otelMocks "hotelops/infras/otel/mocks"
	propertyModel "hotelops/internal/domains/property/model"
	"hotelops/internal/domains/room/model"
	"hotelops/internal/domains/room/model/dto"
	"hotelops/internal/domains/room/service"
	serviceMocks "hotelops/internal/domains/room/service/mocks"
	"hotelops/internal/handlers/room"
	"hotelops/internal/workspace"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func fill[T any](items ...T) func(context.Context, string, any, any, any) error {
	return func(_ context.Context, _ string, _, _ any, dest any) error {
		*dest.(*[]T) = items

		return nil
	}
}

type fixture struct {
	gateway *gatewayMocks.MockGateway
	service *serviceMocks.MockRoom
	ws      *workspace.Workspace
	router  chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		gateway: gatewayMocks.NewMockGateway(ctrl),
		service: serviceMocks.NewMockRoom(ctrl),
	}
	f.ws = workspace.New(workspace.Deps{
		Gateway: f.gateway,
		Events:  kafkaMocks.NewMockClient(ctrl),
		Config:  &config.Config{},
		Otel:    otelMocks.NewOtel(),
	})

	f.gateway.EXPECT().Select(gomock.Any(), propertyModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fill(propertyModel.Property{ID: "p1", Name: "Lakeside Lodge"})).AnyTimes()

	handler := room.New(f.service, otelMocks.NewOtel())

	f.router = chi.NewRouter()
	f.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(workspace.WithContext(r.Context(), f.ws)))
		})
	})
	handler.Router(f.router)

	return f
}

func (f *fixture) expectRoomsRefresh(rooms ...model.Room) {
	f.gateway.EXPECT().Select(gomock.Any(), model.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fill(rooms...))
}

func (f *fixture) serve(method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	return recorder
}

func TestCreateRoom(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "created and workspace refreshed",
			body: `{"room_number":"101","type":"deluxe","capacity":2,"rate":120}`,
			setupMock: func(f *fixture) {
				f.service.EXPECT().Create(gomock.Any(), "p1", gomock.Any()).
					Return(dto.RoomResponse{ID: "r1", RoomNumber: "101"}, nil)
				f.expectRoomsRefresh(model.Room{ID: "r1", PropertyID: "p1", RoomNumber: "101"})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "missing capacity",
			body:      `{"room_number":"101","type":"deluxe"}`,
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duplicate number",
			body: `{"room_number":"101","type":"deluxe","capacity":2}`,
			setupMock: func(f *fixture) {
				f.service.EXPECT().Create(gomock.Any(), "p1", gomock.Any()).
					Return(dto.RoomResponse{}, failure.BadRequestFromString(service.MessageRoomNumberTaken))
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			recorder := f.serve(http.MethodPost, "/rooms", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestCreateRoomRefreshFailureStillSucceeds(t *testing.T) {
	f := newFixture(t)
	f.service.EXPECT().Create(gomock.Any(), "p1", gomock.Any()).Return(dto.RoomResponse{ID: "r1"}, nil)
	f.gateway.EXPECT().Select(gomock.Any(), model.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))

	recorder := f.serve(http.MethodPost, "/rooms", `{"room_number":"101","type":"deluxe","capacity":2}`)

	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestGetRooms(t *testing.T) {
	t.Run("filters by type and status", func(t *testing.T) {
		f := newFixture(t)
		f.service.EXPECT().GetAll(gomock.Any(), "p1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, params gDto.QueryParams, filter gDto.FilterGroup) (dto.ListRoomsResponse, error) {
				assert.Equal(t, 2, params.Page)
				assert.Equal(t, model.FieldRoomNumber, params.SortBy)
				assert.Equal(t, []string{model.FieldType, model.FieldStatus}, filter.Fields())

				return dto.ListRoomsResponse{TotalData: 1}, nil
			})

		recorder := f.serve(http.MethodGet, "/rooms?page=2&type=deluxe&status=cleaning", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"total_data":1`)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.serve(http.MethodGet, "/rooms?status=flooded", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetRoomByID(t *testing.T) {
	f := newFixture(t)
	f.service.EXPECT().Get(gomock.Any(), "p1", "r9").Return(dto.RoomResponse{}, failure.NotFound(service.MessageRoomNotFound))

	recorder := f.serve(http.MethodGet, "/rooms/r9", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpdateRoom(t *testing.T) {
	f := newFixture(t)
	f.service.EXPECT().Update(gomock.Any(), "p1", "r1", dto.UpdateRoomRequest{Status: model.StatusCleaning}).Return(nil)
	f.expectRoomsRefresh(model.Room{ID: "r1", PropertyID: "p1", Status: model.StatusCleaning})

	recorder := f.serve(http.MethodPatch, "/rooms/r1", `{"status":"cleaning"}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	rooms := f.ws.Properties.Snapshot().Rooms
	require.Len(t, rooms, 1)
	assert.Equal(t, model.StatusCleaning, rooms[0].Status)
}

func TestDeleteRoom(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)
		f.service.EXPECT().Delete(gomock.Any(), "p1", "r1").Return(nil)
		f.expectRoomsRefresh()

		recorder := f.serve(http.MethodDelete, "/rooms/r1", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("booked", func(t *testing.T) {
		f := newFixture(t)
		f.service.EXPECT().Delete(gomock.Any(), "p1", "r1").Return(failure.Conflict(service.MessageRoomHasBookings))

		recorder := f.serve(http.MethodDelete, "/rooms/r1", "")

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}
