package service_test

import (
	"context"
	"errors"
	"hotelops/config"
	gatewayMocks "hotelops/infras/gateway/mocks"
	kafkaMocks "hotelops/infras/kafka/mocks"
	otelMocks "hotelops/infras/otel/mocks"
	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/dashboard/service"
	posMocks "hotelops/internal/domains/pos/service/mocks"
	propertyModel "hotelops/internal/domains/property/model"
	roomModel "hotelops/internal/domains/room/model"
	saleModel "hotelops/internal/domains/sale/model"
	"hotelops/internal/workspace"
	"hotelops/shared/failure"
	"net/http"
	"testing"
	"time"

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

func newWorkspace(ctrl *gomock.Controller, gw *gatewayMocks.MockGateway) *workspace.Workspace {
	return workspace.New(workspace.Deps{
		Gateway: gw,
		Events:  kafkaMocks.NewMockClient(ctrl),
		Config:  &config.Config{},
		Otel:    otelMocks.NewOtel(),
		Clock:   func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) },
	})
}

func TestDashboardSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := gatewayMocks.NewMockGateway(ctrl)
	pos := posMocks.NewMockPOS(ctrl)
	ws := newWorkspace(ctrl, gw)

	gw.EXPECT().Select(gomock.Any(), propertyModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fill(propertyModel.Property{ID: "p1", Name: "Main"}))
	gw.EXPECT().Select(gomock.Any(), roomModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fill(rooms...))
	gw.EXPECT().Select(gomock.Any(), bookingModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fill(stay("b1", "r1", "g1", 14, 16, bookingModel.StatusCheckedIn, 300, 1)))
	pos.EXPECT().CompletedSales(gomock.Any(), "p1").
		Return([]saleModel.Sale{{ID: "s1", Total: 50, Status: saleModel.StatusCompleted}}, nil)

	summary, err := service.New(pos, otelMocks.NewOtel()).Summary(context.Background(), ws)

	require.NoError(t, err)
	assert.Equal(t, jan(15), summary.Today)
	assert.Equal(t, 1, summary.OccupiedRooms)
	assert.InDelta(t, 25.0, summary.OccupancyRate, 0.001)
	assert.InDelta(t, 350.0, summary.Revenue(), 0.001)
	assert.Equal(t, 1, summary.BookingsCount)
}

func TestDashboardSummaryFailures(t *testing.T) {
	tests := []struct {
		name string
		mock func(gw *gatewayMocks.MockGateway, pos *posMocks.MockPOS)
		code int
	}{
		{
			name: "no property",
			mock: func(gw *gatewayMocks.MockGateway, _ *posMocks.MockPOS) {
				gw.EXPECT().Select(gomock.Any(), propertyModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(fill[propertyModel.Property]())
			},
			code: http.StatusConflict,
		},
		{
			name: "sales unavailable",
			mock: func(gw *gatewayMocks.MockGateway, pos *posMocks.MockPOS) {
				gw.EXPECT().Select(gomock.Any(), propertyModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(fill(propertyModel.Property{ID: "p1"}))
				gw.EXPECT().Select(gomock.Any(), roomModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(fill[roomModel.Room]()).AnyTimes()
				gw.EXPECT().Select(gomock.Any(), bookingModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(fill[bookingModel.Booking]()).AnyTimes()
				pos.EXPECT().CompletedSales(gomock.Any(), "p1").
					Return(nil, failure.Internal("Failed to fetch sales", errors.New("timeout")))
			},
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gw := gatewayMocks.NewMockGateway(ctrl)
			pos := posMocks.NewMockPOS(ctrl)
			tt.mock(gw, pos)

			_, err := service.New(pos, otelMocks.NewOtel()).Summary(context.Background(), newWorkspace(ctrl, gw))

			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
}

func TestDashboardSummarySalesFailureLeavesStoresAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := gatewayMocks.NewMockGateway(ctrl)
	pos := posMocks.NewMockPOS(ctrl)
	ws := newWorkspace(ctrl, gw)
	salesFailed := make(chan struct{})

	waitForSales := func(ctx context.Context) error {
		<-salesFailed

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
			return nil
		}
	}

	gw.EXPECT().Select(gomock.Any(), propertyModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fill(propertyModel.Property{ID: "p1"}))
	gw.EXPECT().Select(gomock.Any(), roomModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _, _ any, dest any) error {
			if err := waitForSales(ctx); err != nil {
				return err
			}

			*dest.(*[]roomModel.Room) = rooms

			return nil
		})
	gw.EXPECT().Select(gomock.Any(), bookingModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _, _ any, dest any) error {
			if err := waitForSales(ctx); err != nil {
				return err
			}

			*dest.(*[]bookingModel.Booking) = []bookingModel.Booking{stay("b1", "r1", "g1", 14, 16, bookingModel.StatusCheckedIn, 300, 1)}

			return nil
		})
	pos.EXPECT().CompletedSales(gomock.Any(), "p1").
		DoAndReturn(func(context.Context, string) ([]saleModel.Sale, error) {
			close(salesFailed)

			return nil, failure.Internal("Failed to fetch sales", errors.New("timeout"))
		})

	_, err := service.New(pos, otelMocks.NewOtel()).Summary(context.Background(), ws)

	require.Error(t, err)
	assert.Empty(t, ws.Bookings.Snapshot().Error)
	assert.Len(t, ws.Bookings.Snapshot().Bookings, 1)
	assert.Empty(t, ws.Properties.Snapshot().Error)
	assert.Len(t, ws.Properties.Snapshot().Rooms, len(rooms))
}
