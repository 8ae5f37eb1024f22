package service

import (
	"github.com/redis/go-redis/v9"

	"inkwell/internal/config"
	"inkwell/internal/ratelimit"
	"inkwell/internal/repository"
)

type Services struct {
	Auth    AuthService
	Article ArticleService
	Comment CommentService
	Message MessageService
	Visit   VisitService
	Email   EmailService
	Cleanup *CleanupService
	Limiter *ratelimit.Limiter
}

func NewServices(repos *repository.Repositories, redis *redis.Client, cfg *config.Config) *Services {
	emailService := NewEmailService(cfg)
	articleService := NewArticleService(repos.Article, repos.Comment, repos.VisitLog)
	commentService := NewCommentService(repos.Comment, repos.Article, redis, emailService, cfg.CommentModeration)
	messageService := NewMessageService(repos.Message)
	visitService := NewVisitService(repos.VisitLog, repos.Article, cfg.VisitQueueSize, cfg.VisitWorkerCount)
	authService := NewAuthService(repos.Admin, cfg)
	cleanupService := NewCleanupService(articleService, cfg.ArticleRetentionDays)
	limiter := ratelimit.NewLimiter(ratelimit.NewRedisCounterStore(redis))

	return &Services{
		Auth:    authService,
		Article: articleService,
		Comment: commentService,
		Message: messageService,
		Visit:   visitService,
		Email:   emailService,
		Cleanup: cleanupService,
		Limiter: limiter,
	}
}
