package dashboard

import (
	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/dashboard/model/dto"
	"hotelops/internal/domains/dashboard/service"
	"hotelops/internal/workspace"
	"hotelops/shared/constant"
	"hotelops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	config  *config.Config
	otel    otel.Otel
}

func New(service service.Dashboard, config *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		config:  config,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/dashboard", handler.GetDashboard)
}

// GetDashboard summarizes the current property.
// @Summary Dashboard of the current property
// @Description Occupancy, revenue, counts, the three newest bookings and the occupancy of the last seven days.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardResponse]
// @Failure 409 {object} response.Error "No property selected"
// @Failure 500 {object} response.Error
// @Router /v1/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	summary, err := handler.service.Summary(ctx, ws)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build dashboard")

		response.WithError(writer, err)

		return
	}

	property, _ := ws.Properties.Current()

	res := dto.DashboardResponse{}
	res.FromModel(property.ID, handler.config.App.Currency, summary)

	response.WithJSON(writer, http.StatusOK, res)
}
