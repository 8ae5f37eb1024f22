package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"inkwell/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByArticleAndStatus(ctx context.Context, articleID int64, status domain.CommentStatus) ([]domain.Comment, error)
	ListChildIDs(ctx context.Context, parentIDs []int64) ([]int64, error)
	MarkDeleted(ctx context.Context, ids []int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.CommentStatus) error
	CountByArticleAndStatusNot(ctx context.Context, articleID int64, status domain.CommentStatus) (int, error)
	ListForAdmin(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) ([]domain.AdminComment, int64, error)
	DeleteByArticleID(ctx context.Context, articleID int64) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (article_id, parent_id, nickname, email, website, avatar, content, ip_address, user_agent, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ArticleID, comment.ParentID, comment.Nickname, comment.Email,
		comment.Website, comment.Avatar, comment.Content,
		comment.IPAddress, comment.UserAgent, comment.Status,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT * FROM comments WHERE id = $1`
	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByArticleAndStatus(ctx context.Context, articleID int64, status domain.CommentStatus) ([]domain.Comment, error) {
	query := `
		SELECT * FROM comments
		WHERE article_id = $1 AND status = $2
		ORDER BY created_at ASC, id ASC`

	var comments []domain.Comment
	err := r.db.SelectContext(ctx, &comments, query, articleID, status)
	return comments, err
}

func (r *commentRepository) ListChildIDs(ctx context.Context, parentIDs []int64) ([]int64, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id FROM comments WHERE parent_id IN (?)`, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build child id query: %w", err)
	}
	query = r.db.Rebind(query)

	var ids []int64
	err = r.db.SelectContext(ctx, &ids, query, args...)
	return ids, err
}

func (r *commentRepository) MarkDeleted(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE comments SET status = ? WHERE id IN (?)`, domain.CommentDeleted, ids)
	if err != nil {
		return fmt.Errorf("failed to build cascade delete query: %w", err)
	}
	query = r.db.Rebind(query)

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *commentRepository) UpdateStatus(ctx context.Context, id int64, status domain.CommentStatus) error {
	query := `UPDATE comments SET status = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *commentRepository) CountByArticleAndStatusNot(ctx context.Context, articleID int64, status domain.CommentStatus) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM comments WHERE article_id = $1 AND status != $2`
	err := r.db.GetContext(ctx, &count, query, articleID, status)
	return count, err
}

func (r *commentRepository) ListForAdmin(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) ([]domain.AdminComment, int64, error) {
	params.Validate()

	where := ` WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.ArticleID != nil {
		where += fmt.Sprintf(" AND c.article_id = $%d", idx)
		args = append(args, *filter.ArticleID)
		idx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND c.status = $%d", idx)
		args = append(args, *filter.Status)
		idx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM comments c` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			c.id, c.article_id, a.title AS article_title, c.parent_id,
			c.nickname, c.email, c.website, c.content,
			c.ip_address, c.user_agent, c.status, c.created_at
		FROM comments c
		INNER JOIN articles a ON c.article_id = a.id` + where + fmt.Sprintf(`
		ORDER BY c.created_at DESC
		LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, params.PageSize, params.Offset())

	var comments []domain.AdminComment
	err := r.db.SelectContext(ctx, &comments, query, args...)
	return comments, total, err
}

func (r *commentRepository) DeleteByArticleID(ctx context.Context, articleID int64) error {
	query := `DELETE FROM comments WHERE article_id = $1`
	_, err := r.db.ExecContext(ctx, query, articleID)
	return err
}
