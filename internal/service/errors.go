package service

import "errors"

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrMessageNotFound = errors.New("message not found")

	// No transition out of the deleted state.
	ErrCommentDeleted = errors.New("comment has been deleted")
	ErrInvalidStatus  = errors.New("invalid status")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
