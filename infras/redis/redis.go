package redis

import (
	"context"
	"net"
	"time"

	"campusroom/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// New connects to the primary node. The reservation lock and the read cache
// both live here, so an unreachable Redis at boot is fatal.
func New(cfg *config.Config) *goRedis.Client {
	primary := cfg.Cache.Redis.Primary
	addr := net.JoinHostPort(primary.Host, primary.Port)

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     addr,
		Password: primary.Password,
		DB:       primary.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("Failed to connect to Redis")
	}

	log.Info().Int("db", primary.DB).Str("addr", addr).Msg("Connected to Redis")

	return client
}
