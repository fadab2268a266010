package auth

import (
	"hotelops/infras/otel"
	"hotelops/internal/domains/session/model/dto"
	"hotelops/internal/workspace"
	"hotelops/shared/constant"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	registry *workspace.Registry
	otel     otel.Otel
}

func New(registry *workspace.Registry, otel otel.Otel) Handler {
	return Handler{
		registry: registry,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/login", handler.Login)
		routerGroup.Post("/refresh", handler.Refresh)
		routerGroup.Post("/logout", handler.Logout)
		routerGroup.Get("/session", handler.Session)
	})
}

// Login handles operator sign in.
// @Summary Sign in
// @Description Exchange email and password for a session. The operator profile must exist.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.SessionResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	ws, err := handler.registry.Login(ctx, req.Email, req.Password)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("sign in failed")

		response.WithError(writer, err)

		return
	}

	snap := ws.Session.Snapshot()

	res := dto.SessionResponse{}
	res.FromModel(string(snap.State), snap.Session, snap.User, true)

	response.WithJSON(writer, http.StatusOK, res)
}

// Refresh rotates the tokens of a session.
// @Summary Refresh session tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.TokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh [post]
func (handler *Handler) Refresh(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Refresh")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	session, err := handler.registry.Refresh(ctx, req.RefreshToken)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res := dto.TokenResponse{}
	res.FromSession(*session)

	response.WithJSON(writer, http.StatusOK, res)
}

// Logout ends the session and drops its workspace.
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/logout [post]
// @Security BearerAuth
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err = handler.registry.Logout(ctx, ws); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign out")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Signed out successfully")
}

// Session describes the signed-in operator.
// @Summary Current session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[dto.SessionResponse]
// @Failure 401 {object} response.Error
// @Router /v1/auth/session [get]
// @Security BearerAuth
func (handler *Handler) Session(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Session")
	defer scope.End()

	ws, err := workspace.Require(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	snap := ws.Session.Snapshot()

	res := dto.SessionResponse{}
	res.FromModel(string(snap.State), snap.Session, snap.User, false)

	response.WithJSON(writer, http.StatusOK, res)
}
