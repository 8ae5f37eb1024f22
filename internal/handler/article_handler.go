package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/domain"
	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

type ArticleHandler struct {
	articleService service.ArticleService
	visitService   service.VisitService
}

func NewArticleHandler(articleService service.ArticleService, visitService service.VisitService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		visitService:   visitService,
	}
}

func (h *ArticleHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.articleService.ListPublished(c.Context(), params)
	if err != nil {
		return err
	}

	// Home page visit, no article attached. Dispatched after the read so it
	// cannot delay or fail the response.
	h.visitService.Record(captureVisit(c, nil))

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return middleware.BadRequest("Invalid article ID")
	}

	article, err := h.articleService.GetByID(c.Context(), id)
	if errors.Is(err, service.ErrArticleNotFound) {
		return middleware.NotFound("Article not found")
	}
	if err != nil {
		return err
	}

	h.visitService.Record(captureVisit(c, &id))

	return c.Status(fiber.StatusOK).JSON(article)
}

func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateArticleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Title == "" || input.Content == "" {
		return middleware.BadRequest("Title and content are required")
	}

	article, err := h.articleService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(article)
}

func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return middleware.BadRequest("Invalid article ID")
	}

	if err := h.articleService.SoftDelete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			return middleware.NotFound("Article not found")
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// captureVisit pulls everything the async pipeline needs out of the request
// while we are still on the request thread.
func captureVisit(c *fiber.Ctx, articleID *int64) domain.Visit {
	return domain.Visit{
		VisitorID: middleware.VisitorID(c),
		ArticleID: articleID,
		PageURL:   c.OriginalURL(),
		IPAddress: middleware.ClientIP(c),
		UserAgent: middleware.UserAgent(c),
		Referer:   c.Get(fiber.HeaderReferer),
	}
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	return strconv.ParseInt(c.Params(param), 10, 64)
}
