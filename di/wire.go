//go:build wireinject
// +build wireinject

package di

import (
	"hotelops/config"
	"hotelops/infras/gateway"
	"hotelops/infras/jwt"
	"hotelops/infras/kafka"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/infras/redis"
	"hotelops/infras/s3"
	"hotelops/internal/workspace"
	"hotelops/permissions"
	"hotelops/shared/cache"
	"hotelops/transport/http"
	"hotelops/transport/http/middleware"
	"hotelops/transport/http/router"

	bookingRepository "hotelops/internal/domains/booking/repository"
	dashboardService "hotelops/internal/domains/dashboard/service"
	posService "hotelops/internal/domains/pos/service"
	productRepository "hotelops/internal/domains/product/repository"
	productService "hotelops/internal/domains/product/service"
	roomRepository "hotelops/internal/domains/room/repository"
	roomService "hotelops/internal/domains/room/service"
	userRepository "hotelops/internal/domains/user/repository"
	userService "hotelops/internal/domains/user/service"

	authHandler "hotelops/internal/handlers/auth"
	bookingHandler "hotelops/internal/handlers/booking"
	calendarHandler "hotelops/internal/handlers/calendar"
	dashboardHandler "hotelops/internal/handlers/dashboard"
	inventoryHandler "hotelops/internal/handlers/inventory"
	posHandler "hotelops/internal/handlers/pos"
	propertyHandler "hotelops/internal/handlers/property"
	roomHandler "hotelops/internal/handlers/room"
	userHandler "hotelops/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	gatewayTables,
	gateway.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var workspaces = wire.NewSet(
	wire.Struct(new(workspace.Deps), "Gateway", "Events", "Config", "Otel"),
	workspace.NewRegistry,
)

var repositories = wire.NewSet(
	roomRepository.New,
	bookingRepository.New,
	productRepository.New,
	userRepository.New,
)

var domains = wire.NewSet(
	posService.New,
	dashboardService.New,
	roomService.New,
	productService.New,
	userService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	propertyHandler.New,
	bookingHandler.New,
	calendarHandler.New,
	dashboardHandler.New,
	posHandler.New,
	roomHandler.New,
	inventoryHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		workspaces,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
