package domain

import "time"

type CommentStatus int

const (
	CommentDeleted  CommentStatus = 0
	CommentApproved CommentStatus = 1
	CommentPending  CommentStatus = 2
)

type Comment struct {
	ID        int64         `json:"id" db:"id"`
	ArticleID int64         `json:"article_id" db:"article_id"`
	ParentID  *int64        `json:"parent_id" db:"parent_id"`
	Nickname  string        `json:"nickname" db:"nickname"`
	Email     string        `json:"-" db:"email"`
	Website   string        `json:"website" db:"website"`
	Avatar    string        `json:"avatar" db:"avatar"`
	Content   string        `json:"content" db:"content"`
	IPAddress string        `json:"-" db:"ip_address"`
	UserAgent string        `json:"-" db:"user_agent"`
	Status    CommentStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`

	Children []*Comment `json:"children,omitempty" db:"-"`
}

type CreateCommentInput struct {
	ArticleID int64  `json:"article_id"`
	ParentID  *int64 `json:"parent_id"`
	Nickname  string `json:"nickname" validate:"required,max=50"`
	Email     string `json:"email" validate:"omitempty,email,max=100"`
	Website   string `json:"website" validate:"omitempty,max=200"`
	Avatar    string `json:"avatar" validate:"omitempty,max=500"`
	Content   string `json:"content" validate:"required,max=4000"`
}

type CommentFilter struct {
	ArticleID *int64
	Status    *CommentStatus
}

// AdminComment is the moderation view of a comment, including the fields
// hidden from the public tree.
type AdminComment struct {
	ID           int64         `json:"id" db:"id"`
	ArticleID    int64         `json:"article_id" db:"article_id"`
	ArticleTitle string        `json:"article_title" db:"article_title"`
	ParentID     *int64        `json:"parent_id" db:"parent_id"`
	Nickname     string        `json:"nickname" db:"nickname"`
	Email        string        `json:"email" db:"email"`
	Website      string        `json:"website" db:"website"`
	Content      string        `json:"content" db:"content"`
	IPAddress    string        `json:"ip_address" db:"ip_address"`
	UserAgent    string        `json:"user_agent" db:"user_agent"`
	Status       CommentStatus `json:"status" db:"status"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}
