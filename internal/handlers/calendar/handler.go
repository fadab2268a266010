package calendar

import (
	"context"
	"errors"
	"hotelops/config"
	"hotelops/infras/otel"
	bookingDto "hotelops/internal/domains/booking/model/dto"
	"hotelops/internal/domains/calendar/model"
	"hotelops/internal/domains/calendar/model/dto"
	"hotelops/internal/domains/calendar/service"
	"hotelops/internal/workspace"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var errNoSelection = failure.NotFound("no booking selected")

type Handler struct {
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Handler {
	return Handler{
		config: config,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/calendar", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCalendar)
		routerGroup.Post("/navigate", handler.Navigate)
		routerGroup.Post("/bookings/{id}/click", handler.ClickBooking)
		routerGroup.Get("/selected", handler.GetSelected)
		routerGroup.Get("/ics", handler.ExportICS)
	})
}

// GetCalendar renders the week around the current date.
// @Summary Render the booking calendar
// @Description Rooms are rows, the seven days of the week are columns. A date jumps to its week first.
// @Tags Calendar
// @Produce json
// @Param date query string false "Any date of the week to show (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.CalendarResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "No property selected"
// @Failure 500 {object} response.Error
// @Router /v1/calendar [get]
// @Security BearerAuth
func (handler *Handler) GetCalendar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if date := request.URL.Query().Get(constant.RequestParamDate); date != constant.Empty {
		parsed, parseErr := timezone.ParseDate(date)
		if parseErr != nil {
			response.WithError(writer, failure.BadRequestFromString("date must be a date in YYYY-MM-DD format"))

			return
		}

		ws.Calendar.SetDate(parsed)
	}

	plan, err := handler.render(ctx, ws)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	snap := ws.Bookings.Snapshot()

	res := dto.CalendarResponse{Loading: snap.Loading, Error: snap.Error}
	res.FromPlan(ws.Calendar.CurrentDate().Format(constant.DayFormat), plan)

	response.WithJSON(writer, http.StatusOK, res)
}

// Navigate moves the calendar a week back or forward, or back to today.
// @Summary Navigate the calendar
// @Tags Calendar
// @Accept json
// @Produce json
// @Param request body dto.NavigateRequest true "Direction: previous, next or today"
// @Success 200 {object} response.Data[dto.NavigateResponse]
// @Failure 400 {object} response.Error
// @Router /v1/calendar/navigate [post]
// @Security BearerAuth
func (handler *Handler) Navigate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Navigate")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.NavigateRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	current, err := ws.Calendar.Navigate(req.Direction)
	if err != nil {
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	week := service.WeekOf(current)

	res := dto.NavigateResponse{}
	res.FromWeek(current.Format(constant.DayFormat), week, service.WeekLabel(week))

	response.WithJSON(writer, http.StatusOK, res)
}

// ClickBooking opens a booking drawn in the current week.
// @Summary Click a calendar booking
// @Description The booking becomes the selected booking of the workspace.
// @Tags Calendar
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[bookingDto.BookingResponse]
// @Failure 404 {object} response.Error "Booking is not shown in this week"
// @Failure 500 {object} response.Error
// @Router /v1/calendar/bookings/{id}/click [post]
// @Security BearerAuth
func (handler *Handler) ClickBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClickBooking")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	plan, err := handler.render(ctx, ws)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	booking, err := ws.Calendar.Click(plan, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotShown) {
			err = failure.NotFound(err.Error())
		}

		response.WithError(writer, err)

		return
	}

	res := bookingDto.BookingResponse{}
	res.FromModel(booking)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetSelected returns the booking opened last.
// @Summary Selected booking
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Data[bookingDto.BookingResponse]
// @Failure 404 {object} response.Error "No booking selected"
// @Router /v1/calendar/selected [get]
// @Security BearerAuth
func (handler *Handler) GetSelected(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSelected")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	booking, ok := ws.SelectedBooking()
	if !ok {
		response.WithError(writer, errNoSelection)

		return
	}

	res := bookingDto.BookingResponse{}
	res.FromModel(booking)

	response.WithJSON(writer, http.StatusOK, res)
}

// ExportICS downloads the current week as an iCalendar file.
// @Summary Export the week as iCalendar
// @Tags Calendar
// @Produce text/calendar
// @Success 200 {string} string "iCalendar document"
// @Failure 409 {object} response.Error "No property selected"
// @Failure 500 {object} response.Error
// @Router /v1/calendar/ics [get]
// @Security BearerAuth
func (handler *Handler) ExportICS(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportICS")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	plan, err := handler.render(ctx, ws)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	filename := "bookings-" + plan.Week.Start.Format(constant.DayFormat) + ".ics"

	response.WithRaw(writer, http.StatusOK, constant.ContentTypeCalendar, filename, []byte(service.ExportICS(plan, ws.Now())))
}

// render loads rooms and bookings of the current property side by side and draws the week.
func (handler *Handler) render(ctx context.Context, ws *workspace.Workspace) (model.RenderPlan, error) {
	property, err := ws.Property(ctx)
	if err != nil {
		return model.RenderPlan{}, err
	}

	// A failed fetch must not cancel the other one, or its store records a failure it never had.
	var group errgroup.Group

	group.Go(func() error {
		return ws.Properties.FetchRooms(ctx, property.ID)
	})

	group.Go(func() error {
		return ws.Bookings.FetchBookings(ctx, property.ID)
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Str("property_id", property.ID).Msg("failed to load calendar")

		return model.RenderPlan{}, err // nolint:wrapcheck
	}

	rooms := ws.Properties.Snapshot().Rooms
	bookings := ws.Bookings.Snapshot().Bookings

	return ws.Calendar.Render(rooms, bookings, handler.config.Calendar.MaxVisibleSlots), nil
}
