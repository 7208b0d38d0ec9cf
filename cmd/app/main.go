package main

import (
	"afristay/config"
	"afristay/di"
	"afristay/helper"
	"afristay/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title AfriStay API
// @version 1.0
// @description Accommodation marketplace for Rwanda: listings, bookings, favorites and promotions.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
