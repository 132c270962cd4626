package main

import (
	"os"

	"campusroom/config"
	"campusroom/helper"
	"campusroom/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)
	logger.SetLogLevel(cfg)

	if len(os.Args) < 2 {
		log.Fatal().Msgf("Migration action is required: %s", helper.Actions())
	}

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("Migration failed")
	}
}
