package lock

//go:generate go run go.uber.org/mock/mockgen -source=./lock.go -destination=./mocks/lock_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusroom/infras/otel"
	"campusroom/shared/constant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix            = "lock"
	otelLockKeyAttribute = "lock.key"
)

var ErrNotAcquired = errors.New("lock is held by another request")

// releaseScript deletes the key only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a short-lived advisory lock. A lock that outlives its TTL is released by Redis.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Release(ctx context.Context, key, token string) error
}

type redisLocker struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisLocker(client *redis.Client, ot otel.Otel) Locker {
	return &redisLocker{
		client: client,
		otel:   ot,
	}
}

func Key(parts ...string) string {
	key := keyPrefix
	for _, part := range parts {
		key += ":" + part
	}

	return key
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (token string, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".Acquire")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelLockKeyAttribute, key)

	token = uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to acquire lock")

		return constant.Empty, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !acquired {
		return constant.Empty, ErrNotAcquired
	}

	return token, nil
}

func (l *redisLocker) Release(ctx context.Context, key, token string) (err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".Release")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelLockKeyAttribute, key)

	if err = releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		log.Error().Err(err).Str("key", key).Msg("failed to release lock")

		return fmt.Errorf("failed to release lock: %w", err)
	}

	return nil
}
