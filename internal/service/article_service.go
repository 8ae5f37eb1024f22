package service

import (
	"context"
	"log"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

type ArticleService interface {
	Create(ctx context.Context, input domain.CreateArticleInput) (*domain.Article, error)
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	ListPublished(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error)
	IncrementViews(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) error

	// PermanentlyDelete removes the article row together with its comments
	// and visit logs. Called by the retention sweep once a soft-deleted
	// article ages past the threshold.
	PermanentlyDelete(ctx context.Context, id int64) error

	ListExpiredDeleted(ctx context.Context, threshold time.Time) ([]domain.Article, error)
}

type articleService struct {
	articleRepo  repository.ArticleRepository
	commentRepo  repository.CommentRepository
	visitLogRepo repository.VisitLogRepository
}

func NewArticleService(articleRepo repository.ArticleRepository, commentRepo repository.CommentRepository, visitLogRepo repository.VisitLogRepository) ArticleService {
	return &articleService{
		articleRepo:  articleRepo,
		commentRepo:  commentRepo,
		visitLogRepo: visitLogRepo,
	}
}

func (s *articleService) Create(ctx context.Context, input domain.CreateArticleInput) (*domain.Article, error) {
	status := domain.ArticlePublished
	if input.Draft {
		status = domain.ArticleDraft
	}

	article := &domain.Article{
		Title:   input.Title,
		Summary: input.Summary,
		Content: input.Content,
		Cover:   input.Cover,
		Status:  status,
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil || article.Status != domain.ArticlePublished {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

func (s *articleService) ListPublished(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Article], error) {
	articles, total, err := s.articleRepo.ListPublished(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Article]{}, err
	}
	return domain.NewPaginatedResponse(articles, params.Page, params.PageSize, total), nil
}

func (s *articleService) IncrementViews(ctx context.Context, id int64) error {
	return s.articleRepo.IncrementViews(ctx, id)
}

func (s *articleService) SoftDelete(ctx context.Context, id int64) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrArticleNotFound
	}
	return s.articleRepo.SoftDelete(ctx, id)
}

func (s *articleService) PermanentlyDelete(ctx context.Context, id int64) error {
	if err := s.commentRepo.DeleteByArticleID(ctx, id); err != nil {
		return err
	}
	if err := s.visitLogRepo.DeleteByArticleID(ctx, id); err != nil {
		return err
	}
	if err := s.articleRepo.HardDelete(ctx, id); err != nil {
		return err
	}

	log.Printf("permanently deleted article %d with its comments and visit logs", id)
	return nil
}

func (s *articleService) ListExpiredDeleted(ctx context.Context, threshold time.Time) ([]domain.Article, error) {
	return s.articleRepo.ListExpiredDeleted(ctx, threshold)
}
