package pos

import (
	"hotelops/infras/otel"
	"hotelops/internal/domains/pos/model/dto"
	"hotelops/internal/domains/pos/service"
	saleDto "hotelops/internal/domains/sale/model/dto"
	saleModel "hotelops/internal/domains/sale/model"
	"hotelops/internal/workspace"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var errNotInCart = failure.NotFound("product is not in the cart")

type Handler struct {
	service service.POS
	otel    otel.Otel
}

func New(service service.POS, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pos", func(routerGroup chi.Router) {
		routerGroup.Get("/products", handler.GetProducts)
		routerGroup.Get("/cart", handler.GetCart)
		routerGroup.Delete("/cart", handler.ClearCart)
		routerGroup.Post("/cart/items", handler.AddItem)
		routerGroup.Patch("/cart/items/{id}", handler.UpdateQuantity)
		routerGroup.Delete("/cart/items/{id}", handler.RemoveItem)
		routerGroup.Post("/checkout", handler.Checkout)
	})
}

// GetProducts lists the products of the current property, filtered by category and search text.
// @Summary Search products
// @Description Names match by substring ignoring case and accents, then by similarity. A suggestion is given when nothing matches.
// @Tags POS
// @Produce json
// @Param category query string false "Category, or all"
// @Param q query string false "Search text"
// @Success 200 {object} response.Data[dto.SearchProductsResponse]
// @Failure 409 {object} response.Error "No property selected"
// @Failure 500 {object} response.Error
// @Router /v1/pos/products [get]
// @Security BearerAuth
func (handler *Handler) GetProducts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProducts")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	property, err := ws.Property(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	products, err := handler.service.Products(ctx, property.ID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	query := request.URL.Query()
	result := service.Search(products, query.Get(constant.RequestParamCategory), query.Get(constant.RequestParamQuery))

	res := dto.SearchProductsResponse{Suggestion: result.Suggestion}
	res.FromModels(result.Products, products)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetCart returns the cart of the workspace.
// @Summary Get cart
// @Tags POS
// @Produce json
// @Success 200 {object} response.Data[dto.CartResponse]
// @Router /v1/pos/cart [get]
// @Security BearerAuth
func (handler *Handler) GetCart(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCart")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	handler.cart(writer, ws)
}

// AddItem puts one unit of a product in the cart.
// @Summary Add product to cart
// @Tags POS
// @Accept json
// @Produce json
// @Param request body dto.AddItemRequest true "Product"
// @Success 200 {object} response.Data[dto.CartResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pos/cart/items [post]
// @Security BearerAuth
func (handler *Handler) AddItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddItem")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.AddItemRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	property, err := ws.Property(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	product, err := handler.service.Product(ctx, property.ID, req.ProductID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	ws.Cart.Add(product)

	handler.cart(writer, ws)
}

// UpdateQuantity sets the quantity of a cart line. Zero or less removes it.
// @Summary Update cart quantity
// @Tags POS
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body dto.UpdateQuantityRequest true "Quantity"
// @Success 200 {object} response.Data[dto.CartResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pos/cart/items/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateQuantity(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateQuantity")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateQuantityRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if !ws.Cart.UpdateQuantity(chi.URLParam(request, constant.RequestParamID), req.Quantity) {
		response.WithError(writer, errNotInCart)

		return
	}

	handler.cart(writer, ws)
}

// RemoveItem drops a line from the cart.
// @Summary Remove product from cart
// @Tags POS
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Data[dto.CartResponse]
// @Failure 404 {object} response.Error
// @Router /v1/pos/cart/items/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveItem")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if !ws.Cart.Remove(chi.URLParam(request, constant.RequestParamID)) {
		response.WithError(writer, errNotInCart)

		return
	}

	handler.cart(writer, ws)
}

// ClearCart empties the cart.
// @Summary Clear cart
// @Tags POS
// @Produce json
// @Success 200 {object} response.Data[dto.CartResponse]
// @Router /v1/pos/cart [delete]
// @Security BearerAuth
func (handler *Handler) ClearCart(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearCart")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	ws.Cart.Clear()

	handler.cart(writer, ws)
}

// Checkout records the cart as a completed sale.
// @Summary Checkout
// @Description A room charge bills a confirmed or checked-in booking of the current property.
// @Tags POS
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Payment"
// @Success 201 {object} response.Data[saleDto.SaleResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pos/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CheckoutRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	property, err := ws.Property(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if req.PaymentMethod == saleModel.PaymentRoomCharge {
		if _, ok := ws.Bookings.Booking(req.BookingID); !ok {
			if err = ws.Bookings.FetchBookings(ctx, property.ID); err != nil {
				scope.TraceError(err)
				response.WithError(writer, err)

				return
			}
		}
	}

	sale, err := handler.service.Checkout(ctx, property.ID, ws.Cart, ws.Bookings, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("payment_method", string(req.PaymentMethod)).Msg("checkout failed")

		response.WithError(writer, err)

		return
	}

	res := saleDto.SaleResponse{}
	res.FromModel(sale)

	response.WithJSON(writer, http.StatusCreated, res)
}

func (handler *Handler) cart(writer http.ResponseWriter, ws *workspace.Workspace) {
	res := dto.CartResponse{}
	res.FromItems(ws.Cart.Items())

	response.WithJSON(writer, http.StatusOK, res)
}
