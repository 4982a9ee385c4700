package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis is a TTL cache storing JSON-encoded values in Redis. Redis errors
// degrade to cache misses; the cache never fails a request.
type Redis[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis creates a Redis-backed cache. Keys are namespaced with prefix.
func NewRedis[T any](client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *Redis[T] {
	return &Redis[T]{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// Get retrieves and decodes a value. Returns false on miss or any error.
func (c *Redis[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T

	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache: redis get failed", zap.String("key", key), zap.Error(err))
		}
		return zero, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		c.logger.Warn("cache: undecodable entry", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	return v, true
}

// Set encodes and stores a value with the configured TTL.
func (c *Redis[T]) Set(ctx context.Context, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache: unencodable value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache: redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes a value.
func (c *Redis[T]) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		c.logger.Warn("cache: redis del failed", zap.String("key", key), zap.Error(err))
	}
}

// Close closes the underlying client.
func (c *Redis[T]) Close() error {
	return c.client.Close()
}
