// Package service runs the point of sale: product lookup, search and checkout of a cart.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"slices"

	"hotelops/config"
	"hotelops/infras/gateway"
	"hotelops/infras/kafka"
	"hotelops/infras/otel"
	"hotelops/infras/s3"
	bookingModel "hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/pos/model"
	"hotelops/internal/domains/pos/model/dto"
	productModel "hotelops/internal/domains/product/model"
	saleModel "hotelops/internal/domains/sale/model"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	gModel "hotelops/shared/model"
	"hotelops/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	EventSaleCompleted = "sale.completed"

	MessageFetchProductsFailed = "Failed to fetch products"
	MessageFetchSalesFailed    = "Failed to fetch sales"
	MessageCheckoutFailed      = "Failed to complete sale"
)

var (
	ErrEmptyCart           = failure.BadRequestFromString("cart is empty")
	ErrRoomChargeBooking   = failure.BadRequestFromString("room charge requires a booking")
	ErrRoomChargeNotActive = failure.BadRequestFromString("room charge requires a confirmed or checked-in booking")

	errProductNotFound = failure.NotFound(productModel.EntityName + " not found")
	errBookingNotFound = failure.NotFound(bookingModel.EntityName + " not found")
)

// BookingFinder resolves the booking a room charge is billed to.
type BookingFinder interface {
	Booking(id string) (bookingModel.Booking, bool)
}

type POS interface {
	Products(ctx context.Context, propertyID string) ([]productModel.Product, error)
	Product(ctx context.Context, propertyID, productID string) (productModel.Product, error)
	CompletedSales(ctx context.Context, propertyID string) ([]saleModel.Sale, error)
	Checkout(ctx context.Context, propertyID string, cart *model.Cart, bookings BookingFinder, req dto.CheckoutRequest) (saleModel.Sale, error)
}

type serviceImpl struct {
	gateway gateway.Gateway
	cache   cache.RedisCache
	events  kafka.Client
	s3      s3.S3
	cfg     *config.Config
	otel    otel.Otel
}

func New(gw gateway.Gateway, redisCache cache.RedisCache, events kafka.Client, storage s3.S3, cfg *config.Config, ot otel.Otel) POS {
	return &serviceImpl{
		gateway: gw,
		cache:   redisCache,
		events:  events,
		s3:      storage,
		cfg:     cfg,
		otel:    ot,
	}
}

// Products lists the products of a property by name, through the cache.
func (s *serviceImpl) Products(ctx context.Context, propertyID string) (res []productModel.Product, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pos.Products")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(productModel.CacheKeyList, propertyID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", cacheKey).Msg("failed to read products from cache")
	}

	res = []productModel.Product{}

	err = s.gateway.Select(ctx, productModel.TableName,
		gDto.And(gDto.Eq(productModel.FieldPropertyID, propertyID)),
		gDto.OrderBy(productModel.FieldName, gDto.SortDirAsc),
		&res,
	)
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to fetch products")

		return nil, failure.Internal(MessageFetchProductsFailed, err) // nolint:wrapcheck
	}

	if cacheErr := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("key", cacheKey).Msg("failed to cache products")
	}

	return res, nil
}

func (s *serviceImpl) Product(ctx context.Context, propertyID, productID string) (productModel.Product, error) {
	products, err := s.Products(ctx, propertyID)
	if err != nil {
		return productModel.Product{}, err
	}

	idx := slices.IndexFunc(products, func(p productModel.Product) bool { return p.ID == productID })
	if idx < 0 {
		return productModel.Product{}, errProductNotFound
	}

	return products[idx], nil
}

func (s *serviceImpl) CompletedSales(ctx context.Context, propertyID string) (res []saleModel.Sale, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pos.CompletedSales")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = []saleModel.Sale{}

	err = s.gateway.Select(ctx, saleModel.TableName,
		gDto.And(
			gDto.Eq(saleModel.FieldPropertyID, propertyID),
			gDto.Eq(saleModel.FieldStatus, saleModel.StatusCompleted),
		),
		gDto.OrderBy(constant.FieldCreatedAt, gDto.SortDirDesc),
		&res,
	)
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to fetch sales")

		return nil, failure.Internal(MessageFetchSalesFailed, err) // nolint:wrapcheck
	}

	return res, nil
}

// Checkout records the cart as a completed sale and empties it. The receipt upload
// and the sale event are best-effort.
func (s *serviceImpl) Checkout(ctx context.Context, propertyID string, cart *model.Cart, bookings BookingFinder, req dto.CheckoutRequest) (sale saleModel.Sale, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pos.Checkout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if cart.Empty() {
		return sale, ErrEmptyCart
	}

	items := cart.SaleItems()

	sale = saleModel.Sale{
		ID:            uuid.NewString(),
		PropertyID:    propertyID,
		Items:         items,
		Total:         items.Total(),
		PaymentMethod: req.PaymentMethod,
		Status:        saleModel.StatusCompleted,
		Metadata:      gModel.Metadata{CreatedAt: timezone.Now()},
	}

	if req.PaymentMethod == saleModel.PaymentRoomCharge {
		booking, chargeErr := roomChargeBooking(bookings, propertyID, req.BookingID)
		if chargeErr != nil {
			return saleModel.Sale{}, chargeErr
		}

		sale.BookingID = &booking.ID
		sale.GuestID = &booking.GuestID
	}

	var stored []saleModel.Sale
	if err = s.gateway.Insert(ctx, saleModel.TableName, sale, &stored); err != nil {
		log.Error().Err(err).Str("sale_id", sale.ID).Msg("failed to insert sale")

		return saleModel.Sale{}, failure.Internal(MessageCheckoutFailed, err) // nolint:wrapcheck
	}

	if len(stored) > 0 {
		sale = stored[0]
	}

	if url, ok := s.uploadReceipt(ctx, sale); ok {
		sale.ReceiptURL = &url
	}

	s.publish(ctx, sale)
	cart.Clear()

	return sale, nil
}

// roomChargeBooking resolves the stay a room charge is billed to. Stays of other
// properties are reported as unknown.
func roomChargeBooking(bookings BookingFinder, propertyID, bookingID string) (bookingModel.Booking, error) {
	if bookingID == constant.Empty {
		return bookingModel.Booking{}, ErrRoomChargeBooking
	}

	booking, ok := bookings.Booking(bookingID)
	if !ok || booking.PropertyID != propertyID {
		return bookingModel.Booking{}, errBookingNotFound
	}

	if booking.Status != bookingModel.StatusConfirmed && booking.Status != bookingModel.StatusCheckedIn {
		return bookingModel.Booking{}, ErrRoomChargeNotActive
	}

	return booking, nil
}

func (s *serviceImpl) uploadReceipt(ctx context.Context, sale saleModel.Sale) (string, bool) {
	if s.cfg.External.S3.BucketName == constant.Empty {
		return constant.Empty, false
	}

	receipt := Receipt(sale, s.cfg.App.Name, s.cfg.App.Currency)

	url, err := s.s3.UploadFileBytes(context.WithoutCancel(ctx), s.cfg.External.S3.BucketName,
		s.cfg.External.S3.ReceiptDir, sale.ID+".txt", constant.ContentTypeText, []byte(receipt))
	if err != nil {
		log.Warn().Err(err).Str("sale_id", sale.ID).Msg("failed to upload receipt")

		return constant.Empty, false
	}

	patch := map[string]any{"receipt_url": url}
	if err = s.gateway.Update(context.WithoutCancel(ctx), saleModel.TableName, patch, gDto.And(gDto.Eq(saleModel.FieldID, sale.ID))); err != nil {
		log.Warn().Err(err).Str("sale_id", sale.ID).Msg("failed to store receipt url")
	}

	return url, true
}

func (s *serviceImpl) publish(ctx context.Context, sale saleModel.Sale) {
	err := s.events.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.Topics.Sale, kafka.Message{
		Key:   sale.ID,
		Type:  EventSaleCompleted,
		Value: sale,
	})
	if err != nil {
		log.Warn().Err(err).Str("event", EventSaleCompleted).Str("sale_id", sale.ID).Msg("failed to publish sale event")
	}
}
