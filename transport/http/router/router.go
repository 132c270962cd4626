package router

import (
	"campusroom/internal/handlers/auth"
	"campusroom/internal/handlers/availability"
	"campusroom/internal/handlers/report"
	"campusroom/internal/handlers/reservation"
	"campusroom/internal/handlers/room"
	"campusroom/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

const apiVersion = "/v1"

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Room         room.Handler
	Availability availability.Handler
	Reservation  reservation.Handler
	Report       report.Handler
}

type mounter interface {
	Router(r chi.Router)
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every domain under /v1. Route patterns must stay in
// sync with permissions.json, which RBAC matches against.
func (r *Router) SetupRoutes(router chi.Router) {
	h := &r.DomainHandlers
	domains := []mounter{&h.Auth, &h.User, &h.Room, &h.Availability, &h.Reservation, &h.Report}

	router.Route(apiVersion, func(group chi.Router) {
		for _, domain := range domains {
			domain.Router(group)
		}
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{DomainHandlers: domainHandlers}
}
