package domain

import "time"

type ArticleStatus int

const (
	ArticleDeleted   ArticleStatus = 0
	ArticlePublished ArticleStatus = 1
	ArticleDraft     ArticleStatus = 2
)

type Article struct {
	ID           int64         `json:"id" db:"id"`
	Title        string        `json:"title" db:"title"`
	Summary      string        `json:"summary" db:"summary"`
	Content      string        `json:"content" db:"content"`
	Cover        string        `json:"cover" db:"cover"`
	Status       ArticleStatus `json:"status" db:"status"`
	Views        int64         `json:"views" db:"views"`
	CommentCount int           `json:"comment_count" db:"comment_count"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time    `json:"-" db:"deleted_at"`
}

type CreateArticleInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Summary string `json:"summary" validate:"max=500"`
	Content string `json:"content" validate:"required"`
	Cover   string `json:"cover" validate:"max=500"`
	Draft   bool   `json:"draft"`
}
