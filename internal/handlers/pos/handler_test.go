package pos_test

import (
	"context"
	"encoding/json"
	"hotelops/config"
	gatewayMocks "hotelops/infras/gateway/mocks"
	kafkaMocks "hotelops/infras/kafka/mocks"
	otelMocks "hotelops/infras/otel/mocks"
	bookingModel "hotelops/internal/domains/booking/model"
	posModel "hotelops/internal/domains/pos/model"
	"hotelops/internal/domains/pos/model/dto"
	"hotelops/internal/domains/pos/service"
	"hotelops/internal/domains/pos/service/mocks"
	productModel "hotelops/internal/domains/product/model"
	propertyModel "hotelops/internal/domains/property/model"
	saleModel "hotelops/internal/domains/sale/model"
	saleDto "hotelops/internal/domains/sale/model/dto"
	"hotelops/internal/handlers/pos"
	"hotelops/internal/workspace"
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

var (
	soda   = productModel.Product{ID: "pr1", PropertyID: "p1", Name: "Soda", Category: "drinks", Price: 100}
	coffee = productModel.Product{ID: "pr2", PropertyID: "p1", Name: "Café Latte", Category: "drinks", Price: 250}
	chips  = productModel.Product{ID: "pr3", PropertyID: "p1", Name: "Chips", Category: "snacks", Price: 150}
)

func fill[T any](items ...T) func(context.Context, string, any, any, any) error {
	return func(_ context.Context, _ string, _, _ any, dest any) error {
		*dest.(*[]T) = items

		return nil
	}
}

type fixture struct {
	gateway *gatewayMocks.MockGateway
	service *mocks.MockPOS
	ws      *workspace.Workspace
	router  chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		gateway: gatewayMocks.NewMockGateway(ctrl),
		service: mocks.NewMockPOS(ctrl),
	}

	f.ws = workspace.New(workspace.Deps{
		Gateway: f.gateway,
		Events:  kafkaMocks.NewMockClient(ctrl),
		Config:  &config.Config{},
		Otel:    otelMocks.NewOtel(),
	})

	f.gateway.EXPECT().Select(gomock.Any(), propertyModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(fill(propertyModel.Property{ID: "p1", Name: "Lakeside Lodge"})).AnyTimes()

	handler := pos.New(f.service, otelMocks.NewOtel())

	f.router = chi.NewRouter()
	f.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(workspace.WithContext(r.Context(), f.ws)))
		})
	})
	handler.Router(f.router)

	return f
}

func (f *fixture) serve(method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var payload struct {
		Data T `json:"data"`
	}

	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	return payload.Data
}

func TestGetProducts(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantNames      []string
		wantSuggestion string
	}{
		{name: "everything", wantNames: []string{"Soda", "Café Latte", "Chips"}},
		{name: "one category", query: "?category=snacks", wantNames: []string{"Chips"}},
		{name: "accent-insensitive text", query: "?q=cafe", wantNames: []string{"Café Latte"}},
		{name: "close spelling", query: "?q=chipps", wantNames: []string{"Chips"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.service.EXPECT().Products(gomock.Any(), "p1").Return([]productModel.Product{soda, coffee, chips}, nil)

			recorder := f.serve(http.MethodGet, "/pos/products"+tt.query, "")

			require.Equal(t, http.StatusOK, recorder.Code)

			res := decode[dto.SearchProductsResponse](t, recorder)

			names := make([]string, len(res.Products))
			for i, product := range res.Products {
				names[i] = product.Name
			}

			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, []string{"all", "drinks", "snacks"}, res.Categories)
			assert.Equal(t, tt.wantSuggestion, res.Suggestion)
		})
	}
}

func TestCart(t *testing.T) {
	f := newFixture(t)
	f.service.EXPECT().Product(gomock.Any(), "p1", "pr1").Return(soda, nil).Times(2)
	f.service.EXPECT().Product(gomock.Any(), "p1", "missing").Return(productModel.Product{}, failure.NotFound("product not found"))

	require.Equal(t, http.StatusOK, f.serve(http.MethodPost, "/pos/cart/items", `{"product_id":"pr1"}`).Code)

	recorder := f.serve(http.MethodPost, "/pos/cart/items", `{"product_id":"pr1"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	cart := decode[dto.CartResponse](t, recorder)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.InDelta(t, 200, cart.Total, 0.001)

	assert.Equal(t, http.StatusNotFound, f.serve(http.MethodPost, "/pos/cart/items", `{"product_id":"missing"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.serve(http.MethodPost, "/pos/cart/items", `{}`).Code)

	recorder = f.serve(http.MethodPatch, "/pos/cart/items/pr1", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.InDelta(t, 500, decode[dto.CartResponse](t, recorder).Total, 0.001)

	assert.Equal(t, http.StatusNotFound, f.serve(http.MethodPatch, "/pos/cart/items/pr9", `{"quantity":1}`).Code)

	recorder = f.serve(http.MethodPatch, "/pos/cart/items/pr1", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decode[dto.CartResponse](t, recorder).Items)

	assert.Equal(t, http.StatusNotFound, f.serve(http.MethodDelete, "/pos/cart/items/pr1", "").Code)
}

func TestClearCart(t *testing.T) {
	f := newFixture(t)
	f.ws.Cart.Add(soda)
	f.ws.Cart.Add(chips)

	recorder := f.serve(http.MethodDelete, "/pos/cart", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decode[dto.CartResponse](t, recorder).Items)
	assert.True(t, f.ws.Cart.Empty())
}

func TestCheckout(t *testing.T) {
	t.Run("cash sale", func(t *testing.T) {
		f := newFixture(t)
		f.ws.Cart.Add(soda)

		f.service.EXPECT().Checkout(gomock.Any(), "p1", f.ws.Cart, gomock.Any(), dto.CheckoutRequest{PaymentMethod: saleModel.PaymentCash}).
			DoAndReturn(func(_ context.Context, propertyID string, cart *posModel.Cart, _ service.BookingFinder, req dto.CheckoutRequest) (saleModel.Sale, error) {
				sale := saleModel.Sale{
					ID:            "s1",
					PropertyID:    propertyID,
					Items:         cart.SaleItems(),
					Total:         cart.Total(),
					PaymentMethod: req.PaymentMethod,
					Status:        saleModel.StatusCompleted,
				}
				cart.Clear()

				return sale, nil
			})

		recorder := f.serve(http.MethodPost, "/pos/checkout", `{"payment_method":"cash"}`)

		require.Equal(t, http.StatusCreated, recorder.Code)

		sale := decode[saleDto.SaleResponse](t, recorder)
		assert.Equal(t, "s1", sale.ID)
		assert.InDelta(t, 100, sale.Total, 0.001)
		assert.True(t, f.ws.Cart.Empty())
	})

	t.Run("room charge loads the bookings first", func(t *testing.T) {
		f := newFixture(t)
		f.ws.Cart.Add(soda)

		f.gateway.EXPECT().Select(gomock.Any(), bookingModel.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(fill(bookingModel.Booking{ID: "b1", PropertyID: "p1", Status: bookingModel.StatusCheckedIn}))

		f.service.EXPECT().Checkout(gomock.Any(), "p1", f.ws.Cart, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ *posModel.Cart, bookings service.BookingFinder, _ dto.CheckoutRequest) (saleModel.Sale, error) {
				_, ok := bookings.Booking("b1")
				assert.True(t, ok)

				return saleModel.Sale{ID: "s2", PaymentMethod: saleModel.PaymentRoomCharge}, nil
			})

		recorder := f.serve(http.MethodPost, "/pos/checkout", `{"payment_method":"room_charge","booking_id":"b1"}`)

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("room charge without a booking", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.serve(http.MethodPost, "/pos/checkout", `{"payment_method":"room_charge"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newFixture(t)
		f.service.EXPECT().Checkout(gomock.Any(), "p1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(saleModel.Sale{}, service.ErrEmptyCart)

		recorder := f.serve(http.MethodPost, "/pos/checkout", `{"payment_method":"card"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
