package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"hotelops/config"
	gatewayMocks "hotelops/infras/gateway/mocks"
	kafkaMocks "hotelops/infras/kafka/mocks"
	otelMocks "hotelops/infras/otel/mocks"
	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/dashboard/model/dto"
	dashboardService "hotelops/internal/domains/dashboard/service"
	posMocks "hotelops/internal/domains/pos/service/mocks"
	propertyModel "hotelops/internal/domains/property/model"
	roomModel "hotelops/internal/domains/room/model"
	saleModel "hotelops/internal/domains/sale/model"
	"hotelops/internal/handlers/dashboard"
	"hotelops/internal/workspace"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var today = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func fill[T any](items ...T) func(context.Context, string, any, any, any) error {
	return func(_ context.Context, _ string, _, _ any, dest any) error {
		*dest.(*[]T) = items

		return nil
	}
}

type fixture struct {
	gateway *gatewayMocks.MockGateway
	pos     *posMocks.MockPOS
	router  chi.Router
}

func newFixture(t *testing.T, properties ...propertyModel.Property) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	cfg.App.Currency = "KES"

	f := &fixture{
		gateway: gatewayMocks.NewMockGateway(ctrl),
		pos:     posMocks.NewMockPOS(ctrl),
	}

	ws := workspace.New(workspace.Deps{
		Gateway: f.gateway,
		Events:  kafkaMocks.NewMockClient(ctrl),
		Config:  cfg,
		Otel:    otelMocks.NewOtel(),
		Clock:   func() time.Time { return today.Add(10 * time.Hour) },
	})

	f.gateway.EXPECT().Select(gomock.Any(), propertyModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fill(properties...))

	handler := dashboard.New(dashboardService.New(f.pos, otelMocks.NewOtel()), cfg, otelMocks.NewOtel())

	f.router = chi.NewRouter()
	f.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(workspace.WithContext(r.Context(), ws)))
		})
	})
	handler.Router(f.router)

	return f
}

func (f *fixture) serve() *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	return recorder
}

func TestGetDashboard(t *testing.T) {
	t.Run("summarizes the current property", func(t *testing.T) {
		f := newFixture(t, propertyModel.Property{ID: "p1", Name: "Lakeside Lodge"})
		f.gateway.EXPECT().Select(gomock.Any(), roomModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(fill(roomModel.Room{ID: "r1", PropertyID: "p1"}, roomModel.Room{ID: "r2", PropertyID: "p1"}))
		f.gateway.EXPECT().Select(gomock.Any(), bookingModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(fill(
				bookingModel.Booking{
					ID: "b1", PropertyID: "p1", RoomID: "r1", GuestID: "g1",
					CheckIn: today.AddDate(0, 0, -1), CheckOut: today.AddDate(0, 0, 2),
					Status: bookingModel.StatusCheckedIn, TotalAmount: 300,
				},
				bookingModel.Booking{
					ID: "b2", PropertyID: "p1", RoomID: "r2", GuestID: "g2",
					CheckIn: today, CheckOut: today.AddDate(0, 0, 1),
					Status: bookingModel.StatusCancelled, TotalAmount: 100,
				},
			))
		f.pos.EXPECT().CompletedSales(gomock.Any(), "p1").
			Return([]saleModel.Sale{{ID: "s1", Total: 50, Status: saleModel.StatusCompleted}}, nil)

		recorder := f.serve()

		require.Equal(t, http.StatusOK, recorder.Code)

		var payload struct {
			Data dto.DashboardResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

		res := payload.Data
		assert.Equal(t, "p1", res.PropertyID)
		assert.Equal(t, "2025-01-15", res.Date)
		assert.Equal(t, "KES", res.Stats.Currency)
		assert.Equal(t, 2, res.Stats.TotalRooms)
		assert.Equal(t, 1, res.Stats.OccupiedRooms)
		assert.Equal(t, 1, res.Stats.BookingsCount)
		assert.InDelta(t, 350, res.Stats.Revenue, 0.001)
		assert.Len(t, res.Occupancy, 7)
	})

	t.Run("no property", func(t *testing.T) {
		f := newFixture(t)

		assert.Equal(t, http.StatusConflict, f.serve().Code)
	})

	t.Run("sales unavailable", func(t *testing.T) {
		f := newFixture(t, propertyModel.Property{ID: "p1"})
		f.gateway.EXPECT().Select(gomock.Any(), roomModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(fill[roomModel.Room]()).AnyTimes()
		f.gateway.EXPECT().Select(gomock.Any(), bookingModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(fill[bookingModel.Booking]()).AnyTimes()
		f.pos.EXPECT().CompletedSales(gomock.Any(), "p1").Return(nil, errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, f.serve().Code)
	})
}
