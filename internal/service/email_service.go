package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"inkwell/internal/config"
	"inkwell/internal/domain"
)

// EmailService notifies the blog owner about new engagement. Callers fire it
// from a goroutine and log failures; delivery is best-effort.
type EmailService interface {
	SendCommentNotification(ctx context.Context, comment *domain.Comment) error
}

type emailService struct {
	client *resend.Client
	cfg    *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	return &emailService{
		client: resend.NewClient(cfg.ResendAPIKey),
		cfg:    cfg,
	}
}

func (s *emailService) SendCommentNotification(ctx context.Context, comment *domain.Comment) error {
	if s.cfg.AdminEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("[%s] New comment from %s", s.cfg.SiteName, comment.Nickname)

	// comment.Content is already sanitized at the storage boundary.
	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2 style="color: #111827;">New comment on article #%d</h2>
	<p><strong>%s</strong> wrote:</p>
	<blockquote style="border-left: 3px solid #e5e7eb; margin: 0; padding: 8px 16px; color: #374151;">%s</blockquote>
	<p style="color: #6b7280; font-size: 13px;">Status: %d &middot; Posted at %s</p>
</div>`,
		comment.ArticleID, comment.Nickname, comment.Content, comment.Status,
		comment.CreatedAt.Format("2006-01-02 15:04:05"))

	params := &resend.SendEmailRequest{
		From:    s.cfg.FromEmail,
		To:      []string{s.cfg.AdminEmail},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send comment notification: %w", err)
	}
	return nil
}
