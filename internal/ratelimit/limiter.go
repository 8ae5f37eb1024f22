// Package ratelimit enforces fixed-window limits on public write endpoints.
// Windows are anchored to the first hit of each scope+identity pair, not to
// wall-clock boundaries.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

var ErrRateLimited = errors.New("too many requests, slow down")

type Limiter struct {
	store CounterStore
}

func NewLimiter(store CounterStore) *Limiter {
	return &Limiter{store: store}
}

// Allow consumes one unit of the scope+identity budget and reports whether
// the caller may proceed. Every call increments the counter, including calls
// that end up rejected, so an offender keeps paying for retries within the
// same window.
//
// When the counter store is unreachable the limiter fails open: availability
// of the public write path wins over strict enforcement.
func (l *Limiter) Allow(ctx context.Context, scope, identity string, limit int, window time.Duration) error {
	key := fmt.Sprintf("rate_limit:%s:%s", scope, identity)

	count, err := l.store.Incr(ctx, key)
	if err != nil {
		log.Printf("rate limiter: counter store unavailable, allowing %s: %v", key, err)
		return nil
	}

	if count == 1 {
		// First hit of this window. A crash between Incr and Expire can
		// leak a key without TTL; see DESIGN.md for why this is accepted.
		if err := l.store.Expire(ctx, key, window); err != nil {
			log.Printf("rate limiter: failed to set expiry on %s: %v", key, err)
		}
	}

	if count > int64(limit) {
		log.Printf("rate limiter: rejected %s, count=%d limit=%d", key, count, limit)
		return ErrRateLimited
	}

	return nil
}
