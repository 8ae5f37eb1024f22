package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/service"
)

const localAdminID = "admin_id"

func AuthRequired(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return Unauthorized("Missing authorization header")
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return Unauthorized("Invalid authorization header")
		}

		claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(localAdminID, claims.AdminID)
		return c.Next()
	}
}

func AdminID(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals(localAdminID).(int64)
	if !ok {
		return 0, Unauthorized("Not authenticated")
	}
	return id, nil
}
