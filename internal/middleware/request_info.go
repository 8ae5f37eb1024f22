package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localClientIP  = "client_ip"
	localUserAgent = "user_agent"
	localVisitorID = "visitor_id"

	// VisitorCookie carries the opaque visitor identity used for visit
	// deduplication.
	VisitorCookie = "visitor_id"
)

// Proxy headers checked in priority order. For comma-separated values the
// first entry is the client.
var ipHeaderCandidates = []string{
	"X-Forwarded-For",
	"X-Real-IP",
	"Proxy-Client-IP",
	"WL-Proxy-Client-IP",
	"CF-Connecting-IP",
}

// RequestInfo resolves the real client IP behind proxies and stashes it with
// the user agent in the request locals.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localClientIP, resolveClientIP(c))
		c.Locals(localUserAgent, c.Get(fiber.HeaderUserAgent))
		return c.Next()
	}
}

func resolveClientIP(c *fiber.Ctx) string {
	for _, header := range ipHeaderCandidates {
		value := c.Get(header)
		if value == "" || strings.EqualFold(value, "unknown") {
			continue
		}
		if idx := strings.Index(value, ","); idx != -1 {
			return strings.TrimSpace(value[:idx])
		}
		return value
	}
	return c.IP()
}

// Visitor reads the visitor cookie and mints a fresh opaque id when it is
// missing, so the visit pipeline always has an identity to dedup on.
func Visitor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		visitorID := c.Cookies(VisitorCookie)
		if visitorID == "" {
			visitorID = NewVisitorID()
			c.Cookie(&fiber.Cookie{
				Name:     VisitorCookie,
				Value:    visitorID,
				MaxAge:   365 * 24 * 60 * 60,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localVisitorID, visitorID)
		return c.Next()
	}
}

func NewVisitorID() string {
	return "visitor_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

func ClientIP(c *fiber.Ctx) string {
	if ip, ok := c.Locals(localClientIP).(string); ok && ip != "" {
		return ip
	}
	return c.IP()
}

func UserAgent(c *fiber.Ctx) string {
	if ua, ok := c.Locals(localUserAgent).(string); ok {
		return ua
	}
	return c.Get(fiber.HeaderUserAgent)
}

func VisitorID(c *fiber.Ctx) string {
	if id, ok := c.Locals(localVisitorID).(string); ok {
		return id
	}
	return ""
}
