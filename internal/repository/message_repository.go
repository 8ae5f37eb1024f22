package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"inkwell/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	ListVisible(ctx context.Context, params domain.PaginationParams) ([]domain.Message, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) error
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (nickname, email, website, avatar, content, is_friend_link, ip_address, user_agent, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		message.Nickname, message.Email, message.Website, message.Avatar,
		message.Content, message.IsFriendLink,
		message.IPAddress, message.UserAgent, message.Status,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var message domain.Message
	query := `SELECT * FROM messages WHERE id = $1`
	err := r.db.GetContext(ctx, &message, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ListVisible(ctx context.Context, params domain.PaginationParams) ([]domain.Message, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM messages WHERE status = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, domain.MessageVisible); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM messages
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var messages []domain.Message
	err := r.db.SelectContext(ctx, &messages, query, domain.MessageVisible, params.PageSize, params.Offset())
	return messages, total, err
}

func (r *messageRepository) UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) error {
	query := `UPDATE messages SET status = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}
