package booking

import (
	"context"
	"hotelops/infras/otel"
	"hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/booking/model/dto"
	roomModel "hotelops/internal/domains/room/model"
	"hotelops/internal/workspace"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var errBookingNotFound = failure.NotFound(model.EntityName + " not found")

type Handler struct {
	otel otel.Otel
}

func New(otel otel.Otel) Handler {
	return Handler{
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.UpdateStatus)
		routerGroup.Patch("/{id}/payment", handler.UpdatePayment)
	})

	router.Get("/guests", handler.GetGuests)
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Create a booking in the current property. Status defaults to confirmed and payment to pending.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "No property selected"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreateBookingRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	property, err := ws.Property(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	booking, err := req.ToModel(property.ID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if _, err = ws.Properties.Room(ctx, property.ID, booking.RoomID); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	created, err := ws.Bookings.CreateBooking(ctx, booking)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created " + created.ID)

	res := dto.BookingResponse{}
	res.FromModel(created)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists the bookings of the current property.
// @Summary Get bookings
// @Description Without a range every booking of the property is returned, ordered by check-in.
// @Tags Booking
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD), inclusive on check-in"
// @Param to query string false "Range end (YYYY-MM-DD), inclusive on check-out"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "No property selected"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	rangeReq := dto.DateRangeRequest{
		From: request.URL.Query().Get(constant.RequestParamFrom),
		To:   request.URL.Query().Get(constant.RequestParamTo),
	}

	from, to, ranged, err := rangeReq.Bounds()
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

	if ranged {
		err = ws.Bookings.FetchBookingsByDateRange(ctx, property.ID, from, to)
	} else {
		err = ws.Bookings.FetchBookings(ctx, property.ID)
	}

	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	snap := ws.Bookings.Snapshot()

	res := dto.GetBookingsResponse{Loading: snap.Loading, Error: snap.Error}
	res.FromModels(snap.Bookings)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingByID opens a booking in the detail view.
// @Summary Get booking detail
// @Description Selects the booking and returns it with its room, guest and the statuses it may move to.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingDetailResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
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

	booking, err := ws.Bookings.Find(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if booking.PropertyID != property.ID {
		response.WithError(writer, errBookingNotFound)

		return
	}

	ws.Bookings.SelectBooking(&booking)

	res := dto.BookingDetailResponse{}
	res.FromModel(booking, handler.room(ws, booking.RoomID), handler.guest(ctx, ws, booking.GuestID))

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateStatus moves a booking along its lifecycle.
// @Summary Update booking status
// @Description confirmed -> checked_in -> checked_out, cancellation allowed before check-out.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "Status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error "Invalid transition"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Status changed meanwhile"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
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

	req := dto.UpdateStatusRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	if err = ws.Bookings.UpdateBookingStatus(ctx, property.ID, id, req.Status); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking status updated successfully")
}

// UpdatePayment sets the payment status of a booking.
// @Summary Update booking payment status
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdatePaymentRequest true "Payment status"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/payment [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePayment")
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

	req := dto.UpdatePaymentRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	if err = ws.Bookings.UpdatePaymentStatus(ctx, property.ID, id, req.PaymentStatus); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update payment status")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Payment status updated successfully")
}

// GetGuests lists every guest by name.
// @Summary Get guests
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.GetGuestsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err = ws.Bookings.FetchGuests(ctx); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	snap := ws.Bookings.Snapshot()

	res := dto.GetGuestsResponse{Error: snap.Error}
	res.FromModels(snap.Guests)

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) room(ws *workspace.Workspace, roomID string) *roomModel.Room {
	rooms := ws.Properties.Snapshot().Rooms

	idx := slices.IndexFunc(rooms, func(r roomModel.Room) bool { return r.ID == roomID })
	if idx < 0 {
		return nil
	}

	return &rooms[idx]
}

// guest loads the guest list once when the guest is not cached yet.
func (handler *Handler) guest(ctx context.Context, ws *workspace.Workspace, guestID string) *model.Guest {
	if guest, ok := ws.Bookings.Guest(guestID); ok {
		return &guest
	}

	if err := ws.Bookings.FetchGuests(ctx); err != nil {
		log.Warn().Err(err).Str("guest_id", guestID).Msg("booking detail without guest")

		return nil
	}

	if guest, ok := ws.Bookings.Guest(guestID); ok {
		return &guest
	}

	return nil
}
