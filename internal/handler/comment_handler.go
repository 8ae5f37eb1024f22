package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/domain"
	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) GetTree(c *fiber.Ctx) error {
	articleID, err := parseID(c, "id")
	if err != nil {
		return middleware.BadRequest("Invalid article ID")
	}

	tree, err := h.commentService.GetTree(c.Context(), articleID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(tree)
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	articleID, err := parseID(c, "id")
	if err != nil {
		return middleware.BadRequest("Invalid article ID")
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	input.ArticleID = articleID

	if input.Nickname == "" || input.Content == "" {
		return middleware.BadRequest("Nickname and content are required")
	}

	comment, err := h.commentService.Create(c.Context(), input, middleware.ClientIP(c), middleware.UserAgent(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			return middleware.NotFound("Article not found")
		case errors.Is(err, service.ErrParentNotFound):
			return middleware.BadRequest("Parent comment not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) ListForAdmin(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var filter domain.CommentFilter
	if raw := c.Query("article_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return middleware.BadRequest("Invalid article_id filter")
		}
		filter.ArticleID = &id
	}
	if raw := c.Query("status"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.BadRequest("Invalid status filter")
		}
		status := domain.CommentStatus(value)
		filter.Status = &status
	}

	result, err := h.commentService.ListForAdmin(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "commentId")
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	if err := h.commentService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			return middleware.NotFound("Comment not found")
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type moderateInput struct {
	Status domain.CommentStatus `json:"status"`
}

func (h *CommentHandler) Moderate(c *fiber.Ctx) error {
	id, err := parseID(c, "commentId")
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	var input moderateInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.commentService.Moderate(c.Context(), id, input.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			return middleware.NotFound("Comment not found")
		case errors.Is(err, service.ErrInvalidStatus):
			return middleware.BadRequest("Status must be approved or pending")
		case errors.Is(err, service.ErrCommentDeleted):
			return middleware.Conflict("Comment has been deleted")
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
