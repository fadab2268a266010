package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotelops/config"
	"hotelops/infras/otel/mocks"
	"hotelops/internal/domains/product/model"
	"hotelops/internal/domains/product/model/dto"
	productMocks "hotelops/internal/domains/product/repository/mocks"
	"hotelops/internal/domains/product/service"
	"hotelops/shared/cache"
	cacheMocks "hotelops/shared/cache/mocks"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	gRepo "hotelops/shared/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var soda = model.Product{ID: "pr1", PropertyID: "p1", Name: "Soda", Category: "drinks", Price: 2.5, Cost: 1, Stock: 4, Unit: "can"}

type fixture struct {
	repo  *productMocks.MockProduct
	cache *cacheMocks.MockRedisCache
	svc   service.Inventory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 600

	f := &fixture{
		repo:  productMocks.NewMockProduct(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func (f *fixture) expectInvalidate() {
	f.cache.EXPECT().Delete(gomock.Any(), "product:gets:p1").Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), "inventory:gets:p1:*").Return(nil)
}

func TestInventory_Create(t *testing.T) {
	t.Run("created and catalog invalidated", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, product model.Product) error {
				assert.Equal(t, "p1", product.PropertyID)
				assert.Equal(t, "Soda", product.Name)
				assert.NotEmpty(t, product.ID)

				return nil
			})
		f.expectInvalidate()

		res, err := f.svc.Create(context.Background(), "p1", dto.CreateProductRequest{Name: " Soda ", Category: "drinks", Price: 2.5, Cost: 1, Stock: 4, Unit: "can"})

		require.NoError(t, err)
		assert.Equal(t, 1.0, res.Cost)
		assert.Equal(t, 4, res.Stock)
	})

	t.Run("insert fails", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		_, err := f.svc.Create(context.Background(), "p1", dto.CreateProductRequest{Name: "Soda"})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestInventory_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 2}

	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]model.Product, error) {
			assert.Equal(t, []string{model.FieldPropertyID, model.FieldCategory}, filter.Fields())

			return []model.Product{soda}, nil
		})
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 600).Return(nil)

	res, err := f.svc.GetAll(context.Background(), "p1", params, gDto.And(gDto.Eq(model.FieldCategory, "drinks")))

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Soda", res.Products[0].Name)
}

func TestInventory_Update(t *testing.T) {
	price := 3.0

	tests := []struct {
		name      string
		req       dto.UpdateProductRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "reprices",
			req:  dto.UpdateProductRequest{Price: &price},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(soda, nil)
				f.repo.EXPECT().Update(gomock.Any(), map[string]any{"price": &price}, gomock.Any()).Return(nil)
				f.expectInvalidate()
			},
		},
		{
			name:      "empty patch",
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown product",
			req:  dto.UpdateProductRequest{Unit: "bottle"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Product{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(context.Background(), "p1", "pr1", tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestInventory_AdjustStock(t *testing.T) {
	tests := []struct {
		name      string
		delta     int
		setupMock   func(f *fixture)
		wantStock   int
		wantCode    int
		wantMessage string
	}{
		{
			name:  "restock",
			delta: 6,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Update(gomock.Any(), map[string]any{"stock": 10}, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ map[string]any, filter gDto.FilterGroup) error {
						_, args := filter.GetWhereClause()
						assert.Equal(t, 4, args["stock"])

						return nil
					})
				f.expectInvalidate()
			},
			wantStock: 10,
		},
		{
			name:  "sell out",
			delta: -4,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Update(gomock.Any(), map[string]any{"stock": 0}, gomock.Any()).Return(nil)
				f.expectInvalidate()
			},
		},
		{
			name:        "below zero",
			delta:       -5,
			setupMock:   func(*fixture) {},
			wantCode:    http.StatusBadRequest,
			wantMessage: service.MessageInsufficientStock,
		},
		{
			name:  "stock moved underneath",
			delta: -1,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Update(gomock.Any(), map[string]any{"stock": 3}, gomock.Any()).Return(gRepo.ErrNoRowsAffected)
			},
			wantCode:    http.StatusConflict,
			wantMessage: service.MessageStockChanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(soda, nil)
			tt.setupMock(f)

			res, err := f.svc.AdjustStock(context.Background(), "p1", "pr1", dto.AdjustStockRequest{Delta: tt.delta, Reason: "count"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantMessage, failure.Message(err, ""))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStock, res.Stock)
		})
	}
}

func TestInventory_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(soda, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.expectInvalidate()

		assert.NoError(t, f.svc.Delete(context.Background(), "p1", "pr1"))
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Product{}, errors.New("timeout"))

		err := f.svc.Delete(context.Background(), "p1", "pr1")

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}
