//go:build wireinject
// +build wireinject

package di

import (
	"afristay/config"
	"afristay/infras/jwt"
	"afristay/infras/kafka"
	"afristay/infras/live"
	"afristay/infras/mailer"
	"afristay/infras/otel"
	"afristay/infras/postgres"
	"afristay/infras/redis"
	"afristay/infras/s3"
	"afristay/infras/webhook"
	authService "afristay/internal/domains/auth/service"
	bookingRepository "afristay/internal/domains/booking/repository"
	bookingService "afristay/internal/domains/booking/service"
	contactRepository "afristay/internal/domains/contact/repository"
	contactService "afristay/internal/domains/contact/service"
	dashboardService "afristay/internal/domains/dashboard/service"
	eventRepository "afristay/internal/domains/event/repository"
	eventService "afristay/internal/domains/event/service"
	favoriteRepository "afristay/internal/domains/favorite/repository"
	favoriteService "afristay/internal/domains/favorite/service"
	listingRepository "afristay/internal/domains/listing/repository"
	listingService "afristay/internal/domains/listing/service"
	locationRepository "afristay/internal/domains/location/repository"
	locationService "afristay/internal/domains/location/service"
	notificationService "afristay/internal/domains/notification/service"
	profileRepository "afristay/internal/domains/profile/repository"
	profileService "afristay/internal/domains/profile/service"
	promotionRepository "afristay/internal/domains/promotion/repository"
	promotionService "afristay/internal/domains/promotion/service"
	authHandler "afristay/internal/handlers/auth"
	bookingHandler "afristay/internal/handlers/booking"
	contactHandler "afristay/internal/handlers/contact"
	dashboardHandler "afristay/internal/handlers/dashboard"
	eventHandler "afristay/internal/handlers/event"
	favoriteHandler "afristay/internal/handlers/favorite"
	listingHandler "afristay/internal/handlers/listing"
	liveHandler "afristay/internal/handlers/live"
	locationHandler "afristay/internal/handlers/location"
	profileHandler "afristay/internal/handlers/profile"
	promotionHandler "afristay/internal/handlers/promotion"
	"afristay/permissions"
	"afristay/shared/cache"
	"afristay/shared/transaction"
	"afristay/transport/http"
	"afristay/transport/http/middleware"
	"afristay/transport/http/router"

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
	s3.New,
	kafka.New,
	webhook.New,
	live.NewHub,
	wire.Bind(new(live.Broadcaster), new(*live.Hub)),
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	transaction.New,
)

var profileDomain = wire.NewSet(
	profileRepository.New,
	profileService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var locationDomain = wire.NewSet(
	locationRepository.NewProvince,
	locationRepository.NewDistrict,
	locationRepository.NewSector,
	locationService.New,
)

var listingDomain = wire.NewSet(
	listingRepository.New,
	listingRepository.NewImages,
	listingRepository.NewVideos,
	listingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewPayment,
	bookingService.New,
)

var favoriteDomain = wire.NewSet(
	favoriteRepository.New,
	favoriteService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
)

var promotionDomain = wire.NewSet(
	promotionRepository.New,
	promotionService.New,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var notificationDomain = wire.NewSet(
	notificationService.NewPublisher,
)

var domains = wire.NewSet(
	profileDomain,
	authDomain,
	locationDomain,
	listingDomain,
	bookingDomain,
	favoriteDomain,
	dashboardDomain,
	promotionDomain,
	eventDomain,
	contactDomain,
	notificationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	profileHandler.New,
	listingHandler.New,
	bookingHandler.New,
	favoriteHandler.New,
	dashboardHandler.New,
	promotionHandler.New,
	eventHandler.New,
	contactHandler.New,
	locationHandler.New,
	liveHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() notificationService.Dispatcher {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		mailer.New,
		notificationService.NewDispatcher,
	)

	return nil
}
