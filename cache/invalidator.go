package cache

import (
	"context"

	"cratefm/logger"

	"github.com/go-redis/redis/v8"
)

// RedisInvalidator evicts cached read results after catalog mutations.
// The cache is an optional collaborator: when the client is absent the
// eviction is skipped, and when a DEL fails the error is logged and
// dropped. A mutation that reached the database never fails on cache I/O.
type RedisInvalidator struct {
	client *redis.Client
}

// NewInvalidator wraps the given client. A nil client is valid and yields
// an invalidator that skips every eviction.
func NewInvalidator(client *redis.Client) *RedisInvalidator {
	return &RedisInvalidator{client: client}
}

// Established reports whether a cache connection is available.
func (r *RedisInvalidator) Established() bool {
	return r != nil && r.client != nil
}

// Evict removes the named cache entries, best effort.
func (r *RedisInvalidator) Evict(ctx context.Context, keys ...string) {
	if !r.Established() || len(keys) == 0 {
		return
	}

	for _, key := range keys {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			logger.Warn("cache eviction failed",
				logger.String("key", key),
				logger.ErrorField(err))
			continue
		}
		logger.Info("cache cleared", logger.String("key", key))
	}
}
