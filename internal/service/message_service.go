package service

import (
	"context"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
	"inkwell/internal/sanitize"
)

type MessageService interface {
	Create(ctx context.Context, input domain.CreateMessageInput, ip, userAgent string) (*domain.Message, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
	Delete(ctx context.Context, id int64) error
}

type messageService struct {
	messageRepo repository.MessageRepository
}

func NewMessageService(messageRepo repository.MessageRepository) MessageService {
	return &messageService{messageRepo: messageRepo}
}

func (s *messageService) Create(ctx context.Context, input domain.CreateMessageInput, ip, userAgent string) (*domain.Message, error) {
	message := &domain.Message{
		Nickname:     sanitize.Strict(input.Nickname),
		Email:        sanitize.Strict(input.Email),
		Website:      sanitize.Strict(input.Website),
		Avatar:       sanitize.Strict(input.Avatar),
		Content:      sanitize.Content(input.Content),
		IsFriendLink: input.IsFriendLink,
		IPAddress:    ip,
		UserAgent:    userAgent,
		Status:       domain.MessageVisible,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *messageService) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	messages, total, err := s.messageRepo.ListVisible(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Message]{}, err
	}
	return domain.NewPaginatedResponse(messages, params.Page, params.PageSize, total), nil
}

func (s *messageService) Delete(ctx context.Context, id int64) error {
	message, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if message == nil {
		return ErrMessageNotFound
	}
	return s.messageRepo.UpdateStatus(ctx, id, domain.MessageDeleted)
}
