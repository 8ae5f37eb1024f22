package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"inkwell/internal/domain"
)

type VisitLogRepository interface {
	// Exists reports whether a visit is already recorded for the visitor,
	// page and calendar day. articleID nil matches the non-article row.
	Exists(ctx context.Context, visitorID string, articleID *int64, visitDate time.Time) (bool, error)

	// Insert writes a visit row. A unique-constraint violation on
	// (visitor_id, article_id, visit_date) is reported as inserted=false
	// with a nil error: the visit is already counted.
	Insert(ctx context.Context, visit *domain.VisitLog) (inserted bool, err error)

	DeleteByArticleID(ctx context.Context, articleID int64) error
}

type visitLogRepository struct {
	db *sqlx.DB
}

func NewVisitLogRepository(db *sqlx.DB) VisitLogRepository {
	return &visitLogRepository{db: db}
}

func (r *visitLogRepository) Exists(ctx context.Context, visitorID string, articleID *int64, visitDate time.Time) (bool, error) {
	var exists bool
	var err error

	if articleID != nil {
		query := `SELECT EXISTS(SELECT 1 FROM visit_logs WHERE visitor_id = $1 AND article_id = $2 AND visit_date = $3)`
		err = r.db.GetContext(ctx, &exists, query, visitorID, *articleID, visitDate)
	} else {
		query := `SELECT EXISTS(SELECT 1 FROM visit_logs WHERE visitor_id = $1 AND article_id IS NULL AND visit_date = $2)`
		err = r.db.GetContext(ctx, &exists, query, visitorID, visitDate)
	}

	return exists, err
}

func (r *visitLogRepository) Insert(ctx context.Context, visit *domain.VisitLog) (bool, error) {
	query := `
		INSERT INTO visit_logs (visitor_id, article_id, visit_date, page_url, ip_address, user_agent, referer)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		visit.VisitorID, visit.ArticleID, visit.VisitDate,
		visit.PageURL, visit.IPAddress, visit.UserAgent, visit.Referer,
	).Scan(&visit.ID, &visit.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		// Lost a race against a concurrent request from the same visitor.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *visitLogRepository) DeleteByArticleID(ctx context.Context, articleID int64) error {
	query := `DELETE FROM visit_logs WHERE article_id = $1`
	_, err := r.db.ExecContext(ctx, query, articleID)
	return err
}
