package handler

import (
	"github.com/gofiber/fiber/v2"

	"inkwell/internal/domain"
	"inkwell/internal/service"
)

type Handlers struct {
	Auth    *AuthHandler
	Article *ArticleHandler
	Comment *CommentHandler
	Message *MessageHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(services.Auth),
		Article: NewArticleHandler(services.Article, services.Visit),
		Comment: NewCommentHandler(services.Comment),
		Message: NewMessageHandler(services.Message),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return domain.DefaultPagination()
	}
	params.Validate()
	return params
}
