package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/domain"
	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.messageService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Nickname == "" || input.Content == "" {
		return middleware.BadRequest("Nickname and content are required")
	}

	message, err := h.messageService.Create(c.Context(), input, middleware.ClientIP(c), middleware.UserAgent(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "messageId")
	if err != nil {
		return middleware.BadRequest("Invalid message ID")
	}

	if err := h.messageService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			return middleware.NotFound("Message not found")
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
