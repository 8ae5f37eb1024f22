package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(RequestInfo())
	app.Use(Visitor())
	app.Get("/", handler)
	return app
}

func TestRequestInfo_ClientIP(t *testing.T) {
	var gotIP string
	app := newTestApp(func(c *fiber.Ctx) error {
		gotIP = ClientIP(c)
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("x-forwarded-for wins and first entry is the client", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1, 10.0.0.2")
		req.Header.Set("X-Real-IP", "10.0.0.3")

		_, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "203.0.113.9", gotIP)
	})

	t.Run("falls through unknown header values", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Forwarded-For", "unknown")
		req.Header.Set("X-Real-IP", "203.0.113.7")

		_, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "203.0.113.7", gotIP)
	})

	t.Run("falls back to the connection address", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)

		_, err := app.Test(req)
		require.NoError(t, err)
		assert.NotEmpty(t, gotIP)
	})
}

func TestVisitor(t *testing.T) {
	var gotVisitorID string
	app := newTestApp(func(c *fiber.Ctx) error {
		gotVisitorID = VisitorID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("mints an id and sets the cookie when absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(gotVisitorID, "visitor_"))

		var cookieValue string
		for _, cookie := range resp.Cookies() {
			if cookie.Name == VisitorCookie {
				cookieValue = cookie.Value
			}
		}
		assert.Equal(t, gotVisitorID, cookieValue)
	})

	t.Run("reuses the existing cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Cookie", VisitorCookie+"=visitor_existing123")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, "visitor_existing123", gotVisitorID)
		for _, cookie := range resp.Cookies() {
			assert.NotEqual(t, VisitorCookie, cookie.Name)
		}
	})

	t.Run("distinct requests get distinct ids", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		_, err := app.Test(req)
		require.NoError(t, err)
		first := gotVisitorID

		_, err = app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		assert.NotEqual(t, first, gotVisitorID)
	})
}
