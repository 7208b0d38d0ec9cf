package router

import (
	"afristay/internal/handlers/auth"
	"afristay/internal/handlers/booking"
	"afristay/internal/handlers/contact"
	"afristay/internal/handlers/dashboard"
	"afristay/internal/handlers/event"
	"afristay/internal/handlers/favorite"
	"afristay/internal/handlers/listing"
	"afristay/internal/handlers/live"
	"afristay/internal/handlers/location"
	"afristay/internal/handlers/profile"
	"afristay/internal/handlers/promotion"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Profile   profile.Handler
	Listing   listing.Handler
	Booking   booking.Handler
	Favorite  favorite.Handler
	Dashboard dashboard.Handler
	Promotion promotion.Handler
	Event     event.Handler
	Contact   contact.Handler
	Location  location.Handler
	Live      live.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Profile.Router(routerGroup)
		r.DomainHandlers.Listing.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Favorite.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
		r.DomainHandlers.Promotion.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Location.Router(routerGroup)
		r.DomainHandlers.Live.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
