package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// CounterStore is a shared key to integer store with per-key expiry and an
// atomic increment-and-read.
type CounterStore interface {
	// Incr atomically increments the counter at key, creating it at 1 when
	// absent, and returns the post-increment value.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets the key's time to live.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type redisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) CounterStore {
	return &redisCounterStore{client: client}
}

func (s *redisCounterStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

func (s *redisCounterStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Expire(ctx, key, ttl).Err()
}
