// Package service is the back office of the point-of-sale catalog: products and their stock.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/product/model"
	"hotelops/internal/domains/product/model/dto"
	"hotelops/internal/domains/product/repository"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	gRepo "hotelops/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllInventory = "inventory:gets"

	MessageProductNotFound    = "product not found"
	MessageInsufficientStock  = "insufficient stock"
	MessageStockChanged       = "stock changed meanwhile, reload and try again"
	MessageNothingToUpdate    = "nothing to update"
	messageFetchProductFailed = "Failed to fetch products"
	messageSaveProductFailed  = "Failed to save product"
)

type Inventory interface {
	Create(ctx context.Context, propertyID string, req dto.CreateProductRequest) (dto.StockItemResponse, error)
	GetAll(ctx context.Context, propertyID string, params gDto.QueryParams, filter gDto.FilterGroup) (dto.ListProductsResponse, error)
	Get(ctx context.Context, propertyID, id string) (dto.StockItemResponse, error)
	Update(ctx context.Context, propertyID, id string, req dto.UpdateProductRequest) error
	AdjustStock(ctx context.Context, propertyID, id string, req dto.AdjustStockRequest) (dto.StockItemResponse, error)
	Delete(ctx context.Context, propertyID, id string) error
}

type serviceImpl struct {
	repo  repository.Product
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Product, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Inventory {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func byID(propertyID, id string) gDto.FilterGroup {
	return gDto.And(gDto.Eq(model.FieldID, id), gDto.Eq(model.FieldPropertyID, propertyID))
}

func listPrefix(propertyID string) string {
	return shared.BuildCacheKey(cacheGetAllInventory, propertyID, constant.Empty)
}

func (s *serviceImpl) Create(ctx context.Context, propertyID string, req dto.CreateProductRequest) (res dto.StockItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	product := req.ToModel(propertyID)

	if err = s.repo.Insert(ctx, product); err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to create product")

		return res, failure.Internal(messageSaveProductFailed, err)
	}

	s.invalidate(ctx, propertyID)

	res.FromModel(product)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, propertyID string, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.ListProductsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group := gDto.And(gDto.Eq(model.FieldPropertyID, propertyID))
	if !filter.Empty() {
		group.Filters = append(group.Filters, filter)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(listPrefix(propertyID), params, group)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count products")

		return res, failure.Internal(messageFetchProductFailed, err)
	}

	products, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get products")

		return res, failure.Internal(messageFetchProductFailed, err)
	}

	res.FromModels(products, total, params.Limit)

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("cacheKey", cacheKey).Msg("failed to cache products")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, propertyID, id string) (res dto.StockItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	product, err := s.find(ctx, propertyID, id)
	if err != nil {
		return res, err
	}

	res.FromModel(product)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, propertyID, id string, req dto.UpdateProductRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	patch := shared.TransformFields(req)
	if len(patch) == 0 {
		return failure.BadRequestFromString(MessageNothingToUpdate)
	}

	if _, err = s.find(ctx, propertyID, id); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, patch, byID(propertyID, id)); err != nil {
		log.Error().Err(err).Str("product_id", id).Msg("failed to update product")

		return failure.Internal(messageSaveProductFailed, err)
	}

	s.invalidate(ctx, propertyID)

	return nil
}

// AdjustStock moves the stock of a product by req.Delta. Stock never goes below zero.
// The update is guarded on the stock that was read so a concurrent adjustment is not lost.
func (s *serviceImpl) AdjustStock(ctx context.Context, propertyID, id string, req dto.AdjustStockRequest) (res dto.StockItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.AdjustStock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	product, err := s.find(ctx, propertyID, id)
	if err != nil {
		return res, err
	}

	stock := product.Stock + req.Delta
	if stock < 0 {
		return res, failure.BadRequestFromString(MessageInsufficientStock)
	}

	guard := byID(propertyID, id)
	guard.Filters = append(guard.Filters, gDto.Eq(model.FieldStock, product.Stock))

	if err = s.repo.Update(ctx, map[string]any{model.FieldStock: stock}, guard); err != nil {
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			return res, failure.Conflict(MessageStockChanged)
		}

		log.Error().Err(err).Str("product_id", id).Msg("failed to adjust stock")

		return res, failure.Internal(messageSaveProductFailed, err)
	}

	log.Info().
		Str("product_id", id).
		Int("delta", req.Delta).
		Int("stock", stock).
		Str("reason", req.Reason).
		Msg("stock adjusted")

	s.invalidate(ctx, propertyID)

	product.Stock = stock
	res.FromModel(product)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, propertyID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, propertyID, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, byID(propertyID, id)); err != nil {
		log.Error().Err(err).Str("product_id", id).Msg("failed to delete product")

		return failure.Internal(messageSaveProductFailed, err)
	}

	s.invalidate(ctx, propertyID)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, propertyID, id string) (model.Product, error) {
	product, err := s.repo.Get(ctx, byID(propertyID, id))
	if err != nil {
		log.Error().Err(err).Str("product_id", id).Msg("failed to get product")

		return product, failure.Internal(messageFetchProductFailed, err)
	}

	if product.ID == constant.Empty {
		return product, failure.NotFound(MessageProductNotFound)
	}

	return product, nil
}

// invalidate drops the back-office lists and the point-of-sale catalog of the property.
func (s *serviceImpl) invalidate(ctx context.Context, propertyID string) {
	catalogKey := shared.BuildCacheKey(model.CacheKeyList, propertyID)
	if err := s.cache.Delete(ctx, catalogKey); err != nil {
		log.Warn().Err(err).Str("cacheKey", catalogKey).Msg("failed to delete product catalog from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, listPrefix(propertyID))
}
