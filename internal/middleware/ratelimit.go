package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/ratelimit"
)

// RateLimit guards a write endpoint with a fixed-window budget keyed on the
// client IP. The limiter check runs before the handler, so a rejected
// request never reaches the business write.
func RateLimit(limiter *ratelimit.Limiter, scope string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := limiter.Allow(c.Context(), scope, ClientIP(c), limit, window)
		if errors.Is(err, ratelimit.ErrRateLimited) {
			return TooManyRequests("Too many requests, slow down")
		}
		if err != nil {
			return err
		}
		return c.Next()
	}
}
