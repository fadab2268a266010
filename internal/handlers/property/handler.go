package property

import (
	"hotelops/infras/otel"
	"hotelops/internal/domains/property/model/dto"
	roomDto "hotelops/internal/domains/room/model/dto"
	"hotelops/internal/workspace"
	"hotelops/shared/constant"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	otel otel.Otel
}

func New(otel otel.Otel) Handler {
	return Handler{
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/properties", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetProperties)
		routerGroup.Put("/current", handler.SetCurrentProperty)
		routerGroup.Get("/current/rooms", handler.GetRooms)
	})
}

// GetProperties lists the properties and marks the current one.
// @Summary List properties
// @Tags Property
// @Produce json
// @Success 200 {object} response.Data[dto.GetPropertiesResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties [get]
// @Security BearerAuth
func (handler *Handler) GetProperties(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProperties")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err = ws.Properties.FetchProperties(ctx); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	snap := ws.Properties.Snapshot()

	res := dto.GetPropertiesResponse{Loading: snap.Loading, Error: snap.Error}
	res.FromModels(snap.Properties, snap.Current)

	response.WithJSON(writer, http.StatusOK, res)
}

// SetCurrentProperty switches the property the workspace operates on and loads its rooms.
// @Summary Select the current property
// @Tags Property
// @Accept json
// @Produce json
// @Param request body dto.SetCurrentPropertyRequest true "Property"
// @Success 200 {object} response.Data[dto.PropertyResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/current [put]
// @Security BearerAuth
func (handler *Handler) SetCurrentProperty(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetCurrentProperty")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.SetCurrentPropertyRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if len(ws.Properties.Snapshot().Properties) == 0 {
		if err = ws.Properties.FetchProperties(ctx); err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}
	}

	if err = ws.Properties.SelectProperty(ctx, req.PropertyID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("property_id", req.PropertyID).Msg("failed to select property")

		response.WithError(writer, err)

		return
	}

	current, _ := ws.Properties.Current()

	res := dto.PropertyResponse{}
	res.FromModel(current, current.ID)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRooms lists the rooms of the current property.
// @Summary List rooms of the current property
// @Tags Property
// @Produce json
// @Success 200 {object} response.Data[roomDto.GetRoomsResponse]
// @Failure 409 {object} response.Error "No property selected"
// @Failure 500 {object} response.Error
// @Router /v1/properties/current/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
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

	if err = ws.Properties.FetchRooms(ctx, property.ID); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	snap := ws.Properties.Snapshot()

	res := roomDto.GetRoomsResponse{Loading: snap.Loading, Error: snap.Error}
	res.FromModels(snap.Rooms)

	response.WithJSON(writer, http.StatusOK, res)
}
