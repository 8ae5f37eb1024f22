package domain

import "time"

type MessageStatus int

const (
	MessageDeleted MessageStatus = 0
	MessageVisible MessageStatus = 1
)

// Message is a guestbook entry. Unlike comments these are flat records not
// attached to an article.
type Message struct {
	ID           int64         `json:"id" db:"id"`
	Nickname     string        `json:"nickname" db:"nickname"`
	Email        string        `json:"-" db:"email"`
	Website      string        `json:"website" db:"website"`
	Avatar       string        `json:"avatar" db:"avatar"`
	Content      string        `json:"content" db:"content"`
	IsFriendLink bool          `json:"is_friend_link" db:"is_friend_link"`
	IPAddress    string        `json:"-" db:"ip_address"`
	UserAgent    string        `json:"-" db:"user_agent"`
	Status       MessageStatus `json:"status" db:"status"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

type CreateMessageInput struct {
	Nickname     string `json:"nickname" validate:"required,max=50"`
	Email        string `json:"email" validate:"omitempty,email,max=100"`
	Website      string `json:"website" validate:"omitempty,max=200"`
	Avatar       string `json:"avatar" validate:"omitempty,max=500"`
	Content      string `json:"content" validate:"required,max=4000"`
	IsFriendLink bool   `json:"is_friend_link"`
}
