package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"campusroom/config"
	"campusroom/shared/constant"
	"campusroom/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogger(t *testing.T) {
	t.Helper()

	original, level := log.Logger, zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLoggerTo_JSONOutsideDevelopment(t *testing.T) {
	restoreLogger(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.App.Name = "campusroom"

	var buf bytes.Buffer
	logger.InitLoggerTo(&buf, cfg)

	buf.Reset()
	log.Info().Str("room", "Safra 102").Msg("reservation created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "campusroom", entry["service"])
	assert.Equal(t, "Safra 102", entry["room"])
	assert.Equal(t, "reservation created", entry["message"])
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestInitLoggerTo_ConsoleInDevelopment(t *testing.T) {
	restoreLogger(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment

	var buf bytes.Buffer
	logger.InitLoggerTo(&buf, cfg)

	buf.Reset()
	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestErrorWithStack(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(nil)
	assert.Empty(t, buf.String())

	logger.ErrorWithStack(errors.New("lock store unreachable"))
	assert.Contains(t, buf.String(), "lock store unreachable")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "info", want: zerolog.InfoLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.TraceLevel},
		{level: "loud", want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			restoreLogger(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}
