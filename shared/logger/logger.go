package logger

import (
	"io"
	"os"
	"time"

	"campusroom/config"
	"campusroom/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs the global zerolog logger. Development gets the human
// console writer, every other environment gets one JSON object per line
// tagged with the service name.
func InitLogger(cfg *config.Config) {
	InitLoggerTo(os.Stdout, cfg)
}

// InitLoggerTo is InitLogger with an explicit sink.
func InitLoggerTo(out io.Writer, cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	if cfg.Server.Env == constant.ServerEnvDevelopment {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("service", cfg.App.Name).Logger()
	log.Trace().Str("env", cfg.Server.Env).Msg("Zerolog initialized.")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. An empty or unknown level keeps trace.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", cfg.Server.LogLevel).Msg("No usable log level configured, using trace.")
	}

	zerolog.SetGlobalLevel(level)
}
