package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/ratelimit"
)

type memCounterStore struct {
	counts map[string]int64
}

func (s *memCounterStore) Incr(_ context.Context, key string) (int64, error) {
	s.counts[key]++
	return s.counts[key], nil
}

func (s *memCounterStore) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.NewLimiter(&memCounterStore{counts: make(map[string]int64)})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestInfo())
	app.Post("/comments",
		RateLimit(limiter, "comment", 3, time.Minute),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusCreated)
		})

	post := func(ip string) int {
		req := httptest.NewRequest("POST", "/comments", nil)
		req.Header.Set("X-Forwarded-For", ip)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, fiber.StatusCreated, post("203.0.113.9"))
	}

	// Budget spent; the write handler must not run.
	assert.Equal(t, fiber.StatusTooManyRequests, post("203.0.113.9"))

	// A different client is unaffected.
	assert.Equal(t, fiber.StatusCreated, post("203.0.113.10"))
}
