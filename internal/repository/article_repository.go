package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"inkwell/internal/domain"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ListPublished(ctx context.Context, params domain.PaginationParams) ([]domain.Article, int64, error)
	IncrementViews(ctx context.Context, id int64) error
	UpdateCommentCount(ctx context.Context, id int64, count int) error
	SoftDelete(ctx context.Context, id int64) error
	ListExpiredDeleted(ctx context.Context, threshold time.Time) ([]domain.Article, error)
	HardDelete(ctx context.Context, id int64) error
}

type articleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (title, summary, content, cover, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, views, comment_count, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		article.Title, article.Summary, article.Content, article.Cover, article.Status,
	).Scan(&article.ID, &article.Views, &article.CommentCount, &article.CreatedAt, &article.UpdatedAt)
}

func (r *articleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	query := `SELECT * FROM articles WHERE id = $1`
	err := r.db.GetContext(ctx, &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1 AND status != $2)`
	err := r.db.GetContext(ctx, &exists, query, id, domain.ArticleDeleted)
	return exists, err
}

func (r *articleRepository) ListPublished(ctx context.Context, params domain.PaginationParams) ([]domain.Article, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM articles WHERE status = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, domain.ArticlePublished); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM articles
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var articles []domain.Article
	err := r.db.SelectContext(ctx, &articles, query, domain.ArticlePublished, params.PageSize, params.Offset())
	return articles, total, err
}

func (r *articleRepository) IncrementViews(ctx context.Context, id int64) error {
	query := `UPDATE articles SET views = views + 1 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *articleRepository) UpdateCommentCount(ctx context.Context, id int64, count int) error {
	query := `UPDATE articles SET comment_count = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, count)
	return err
}

func (r *articleRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE articles SET status = $2, deleted_at = NOW() WHERE id = $1 AND status != $2`
	_, err := r.db.ExecContext(ctx, query, id, domain.ArticleDeleted)
	return err
}

func (r *articleRepository) ListExpiredDeleted(ctx context.Context, threshold time.Time) ([]domain.Article, error) {
	query := `SELECT * FROM articles WHERE status = $1 AND deleted_at < $2`
	var articles []domain.Article
	err := r.db.SelectContext(ctx, &articles, query, domain.ArticleDeleted, threshold)
	return articles, err
}

func (r *articleRepository) HardDelete(ctx context.Context, id int64) error {
	query := `DELETE FROM articles WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
