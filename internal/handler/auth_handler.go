package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/domain"
	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return middleware.BadRequest("Username and password are required")
	}

	token, admin, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return middleware.Unauthorized("Invalid username or password")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"admin": admin,
	})
}
