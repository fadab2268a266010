package inventory

import (
	"hotelops/infras/otel"
	"hotelops/internal/domains/product/model"
	"hotelops/internal/domains/product/model/dto"
	"hotelops/internal/domains/product/service"
	"hotelops/internal/workspace"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Inventory
	otel    otel.Otel
}

func New(service service.Inventory, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inventory/products", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProduct)
		routerGroup.Get("/", handler.GetProducts)
		routerGroup.Get("/{id}", handler.GetProductByID)
		routerGroup.Patch("/{id}", handler.UpdateProduct)
		routerGroup.Delete("/{id}", handler.DeleteProduct)
		routerGroup.Post("/{id}/stock", handler.AdjustStock)
	})
}

// currentProperty resolves the workspace property, writing the error response when it cannot.
func (handler *Handler) currentProperty(writer http.ResponseWriter, request *http.Request, scope otel.Scope) (string, bool) {
	ws, err := workspace.Require(request.Context())
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return constant.Empty, false
	}

	property, err := ws.Property(request.Context())
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return constant.Empty, false
	}

	return property.ID, true
}

// CreateProduct adds a product to the catalog of the current property.
// @Summary Create a product
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body dto.CreateProductRequest true "Product"
// @Success 201 {object} response.Data[dto.StockItemResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inventory/products [post]
// @Security BearerAuth
func (handler *Handler) CreateProduct(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProduct")
	defer scope.End()

	propertyID, ok := handler.currentProperty(writer, request.WithContext(ctx), scope)
	if !ok {
		return
	}

	req := dto.CreateProductRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, propertyID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create product")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetProducts pages through the catalog with cost and stock.
// @Summary List products
// @Tags Inventory
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "Filter by category"
// @Param q query string false "Search by name"
// @Success 200 {object} response.Data[dto.ListProductsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/inventory/products [get]
// @Security BearerAuth
func (handler *Handler) GetProducts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProducts")
	defer scope.End()

	propertyID, ok := handler.currentProperty(writer, request.WithContext(ctx), scope)
	if !ok {
		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	if queryParams.SortBy == constant.Empty {
		queryParams.SortBy = model.FieldName
		queryParams.SortDir = gDto.SortDirAsc
	}

	query := request.URL.Query()
	filter := gDto.And()

	if category := query.Get(constant.RequestParamCategory); category != constant.Empty && category != model.CategoryAll {
		filter.Filters = append(filter.Filters, gDto.Eq(model.FieldCategory, category))
	}

	if term := strings.TrimSpace(query.Get(constant.RequestParamQuery)); term != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldName, Value: term, Operator: gDto.FilterOperatorLike})
	}

	res, err := handler.service.GetAll(ctx, propertyID, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetProductByID
// @Summary Get a product
// @Tags Inventory
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Data[dto.StockItemResponse]
// @Failure 404 {object} response.Error
// @Router /v1/inventory/products/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetProductByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProductByID")
	defer scope.End()

	propertyID, ok := handler.currentProperty(writer, request.WithContext(ctx), scope)
	if !ok {
		return
	}

	res, err := handler.service.Get(ctx, propertyID, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateProduct
// @Summary Update a product
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body dto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/inventory/products/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProduct(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProduct")
	defer scope.End()

	propertyID, ok := handler.currentProperty(writer, request.WithContext(ctx), scope)
	if !ok {
		return
	}

	req := dto.UpdateProductRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, propertyID, chi.URLParam(request, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update product")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Product updated successfully")
}

// AdjustStock records a restock (positive delta) or a write-off (negative delta).
// @Summary Adjust product stock
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body dto.AdjustStockRequest true "Stock change"
// @Success 200 {object} response.Data[dto.StockItemResponse]
// @Failure 400 {object} response.Error "Insufficient stock"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Stock changed concurrently"
// @Router /v1/inventory/products/{id}/stock [post]
// @Security BearerAuth
func (handler *Handler) AdjustStock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdjustStock")
	defer scope.End()

	propertyID, ok := handler.currentProperty(writer, request.WithContext(ctx), scope)
	if !ok {
		return
	}

	req := dto.AdjustStockRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.AdjustStock(ctx, propertyID, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteProduct
// @Summary Delete a product
// @Tags Inventory
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/inventory/products/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProduct(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProduct")
	defer scope.End()

	propertyID, ok := handler.currentProperty(writer, request.WithContext(ctx), scope)
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, propertyID, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete product")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Product deleted successfully")
}
