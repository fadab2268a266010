package router

import (
	"hotelops/internal/handlers/auth"
	"hotelops/internal/handlers/booking"
	"hotelops/internal/handlers/calendar"
	"hotelops/internal/handlers/dashboard"
	"hotelops/internal/handlers/inventory"
	"hotelops/internal/handlers/pos"
	"hotelops/internal/handlers/property"
	"hotelops/internal/handlers/room"
	"hotelops/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Property  property.Handler
	Booking   booking.Handler
	Calendar  calendar.Handler
	Dashboard dashboard.Handler
	POS       pos.Handler
	Room      room.Handler
	Inventory inventory.Handler
	User      user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Property.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Calendar.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
		r.DomainHandlers.POS.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Inventory.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
