package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeCounterStore is an in-memory CounterStore with manually advanced time.
type fakeCounterStore struct {
	counts  map[string]int64
	expiry  map[string]time.Time
	now     time.Time
	incrErr error

	expireCalls map[string]int
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{
		counts:      make(map[string]int64),
		expiry:      make(map[string]time.Time),
		now:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		expireCalls: make(map[string]int),
	}
}

func (s *fakeCounterStore) Incr(_ context.Context, key string) (int64, error) {
	if s.incrErr != nil {
		return 0, s.incrErr
	}
	if exp, ok := s.expiry[key]; ok && !s.now.Before(exp) {
		delete(s.counts, key)
		delete(s.expiry, key)
	}
	s.counts[key]++
	return s.counts[key], nil
}

func (s *fakeCounterStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	s.expiry[key] = s.now.Add(ttl)
	s.expireCalls[key]++
	return nil
}

func TestLimiter_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to limit then rejects within window", func(t *testing.T) {
		store := newFakeCounterStore()
		limiter := NewLimiter(store)

		for i := 0; i < 3; i++ {
			assert.NoError(t, limiter.Allow(ctx, "comment", "1.2.3.4", 3, time.Minute))
		}

		err := limiter.Allow(ctx, "comment", "1.2.3.4", 3, time.Minute)
		assert.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("window resets after expiry with a fresh count", func(t *testing.T) {
		store := newFakeCounterStore()
		limiter := NewLimiter(store)

		for i := 0; i < 4; i++ {
			_ = limiter.Allow(ctx, "comment", "1.2.3.4", 3, time.Minute)
		}

		store.now = store.now.Add(61 * time.Second)

		assert.NoError(t, limiter.Allow(ctx, "comment", "1.2.3.4", 3, time.Minute))
		assert.Equal(t, int64(1), store.counts["rate_limit:comment:1.2.3.4"])
	})

	t.Run("expiry is set only on first increment of a window", func(t *testing.T) {
		store := newFakeCounterStore()
		limiter := NewLimiter(store)

		for i := 0; i < 3; i++ {
			_ = limiter.Allow(ctx, "login", "1.2.3.4", 10, time.Hour)
		}

		assert.Equal(t, 1, store.expireCalls["rate_limit:login:1.2.3.4"])
	})

	t.Run("rejected calls still increment the counter", func(t *testing.T) {
		store := newFakeCounterStore()
		limiter := NewLimiter(store)

		for i := 0; i < 5; i++ {
			_ = limiter.Allow(ctx, "comment", "1.2.3.4", 3, time.Minute)
		}

		assert.Equal(t, int64(5), store.counts["rate_limit:comment:1.2.3.4"])
	})

	t.Run("identities do not interfere", func(t *testing.T) {
		store := newFakeCounterStore()
		limiter := NewLimiter(store)

		for i := 0; i < 3; i++ {
			assert.NoError(t, limiter.Allow(ctx, "comment", "1.2.3.4", 3, time.Minute))
		}

		assert.NoError(t, limiter.Allow(ctx, "comment", "5.6.7.8", 3, time.Minute))
		assert.ErrorIs(t, limiter.Allow(ctx, "comment", "1.2.3.4", 3, time.Minute), ErrRateLimited)
	})

	t.Run("scopes are independent for the same identity", func(t *testing.T) {
		store := newFakeCounterStore()
		limiter := NewLimiter(store)

		for i := 0; i < 3; i++ {
			assert.NoError(t, limiter.Allow(ctx, "comment", "1.2.3.4", 3, time.Minute))
		}

		assert.NoError(t, limiter.Allow(ctx, "message", "1.2.3.4", 3, time.Minute))
	})

	t.Run("fails open when the store is unreachable", func(t *testing.T) {
		store := newFakeCounterStore()
		store.incrErr = errors.New("connection refused")
		limiter := NewLimiter(store)

		assert.NoError(t, limiter.Allow(ctx, "comment", "1.2.3.4", 3, time.Minute))
	})
}
