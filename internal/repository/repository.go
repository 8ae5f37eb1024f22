package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Article  ArticleRepository
	Comment  CommentRepository
	Message  MessageRepository
	VisitLog VisitLogRepository
	Admin    AdminRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Article:  NewArticleRepository(db),
		Comment:  NewCommentRepository(db),
		Message:  NewMessageRepository(db),
		VisitLog: NewVisitLogRepository(db),
		Admin:    NewAdminRepository(db),
	}
}
