package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campusroom/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	scanBatch             = 100
)

// ErrMiss is wrapped by Get when the key does not exist.
var ErrMiss = redis.Nil

// incrScript starts the expiry on the first increment only, so a counter
// never outlives the window it was created in.
var incrScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCache stores JSON documents. Strings are stored verbatim.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, ttlSeconds int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string, ttlSeconds int) (int64, error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (c *redisCache) scope(ctx context.Context, op, key string) (context.Context, otel.Scope) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+op)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

func (c *redisCache) Save(ctx context.Context, key string, value any, ttlSeconds int) (err error) {
	ctx, scope := c.scope(ctx, "Save", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	payload, err := encode(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode cache value")

		return err
	}

	if err = c.client.Set(ctx, key, payload, time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Int("ttl", ttlSeconds).Msg("cache saved")

	return nil
}

// Get decodes the cached value into value. A missing key wraps ErrMiss.
func (c *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := c.scope(ctx, "Get", key)
	defer scope.End()

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil { //nolint:errorlint
			scope.TraceError(err)
		}

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if err = decode(payload, value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to decode cache value")

		return err
	}

	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := c.scope(ctx, "Delete", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = c.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Clear unlinks every key matching pattern, one scan page at a time.
func (c *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := c.scope(ctx, "Clear", pattern)
	defer scope.End()
	defer scope.TraceIfError(&err)

	var (
		cursor  uint64
		removed int
	)

	for {
		var keys []string

		keys, cursor, err = c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			if err = c.client.Unlink(ctx, keys...).Err(); err != nil {
				log.Error().Err(err).Str("pattern", pattern).Msg("failed to unlink cache keys")

				return fmt.Errorf("failed to delete cache values: %w", err)
			}

			removed += len(keys)
		}

		if cursor == 0 {
			break
		}
	}

	log.Debug().Str("pattern", pattern).Int("removed", removed).Msg("cache cleared")

	return nil
}

// Incr atomically increments the counter at key and returns the new value.
// The key expires ttlSeconds after its first increment.
func (c *redisCache) Incr(ctx context.Context, key string, ttlSeconds int) (count int64, err error) {
	ctx, scope := c.scope(ctx, "Incr", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	ttl := time.Duration(ttlSeconds) * time.Second

	count, err = incrScript.Run(ctx, c.client, []string{key}, ttl.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment cache counter: %w", err)
	}

	return count, nil
}

func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return payload, nil
}

func decode(payload []byte, value any) error {
	if s, ok := value.(*string); ok {
		*s = string(payload)

		return nil
	}

	if err := json.Unmarshal(payload, value); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}
