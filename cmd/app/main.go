package main

import (
	"campusroom/config"
	"campusroom/di"
	"campusroom/helper"
	"campusroom/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)
	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Runner(cfg, "up"); err != nil {
			log.Fatal().Err(err).Msg("Auto migration failed")
		}
	}

	di.InitializeService().Serve()
}
