package service

import (
	"context"
	"log"
	"time"
)

// CleanupService promotes soft-deleted articles past the retention threshold
// to permanent deletion, which cascades into comment and visit-log cleanup.
type CleanupService struct {
	articles      ArticleService
	retentionDays int

	cancel context.CancelFunc
	done   chan struct{}
}

func NewCleanupService(articles ArticleService, retentionDays int) *CleanupService {
	return &CleanupService{
		articles:      articles,
		retentionDays: retentionDays,
	}
}

// Start runs the sweep once a day at 03:00 local time until Stop is called.
func (s *CleanupService) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for {
			timer := time.NewTimer(time.Until(nextRunAt(time.Now())))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				s.Sweep(ctx)
			}
		}
	}()
}

func (s *CleanupService) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// Sweep performs one pass. Per-article failures are logged and skipped so a
// single bad row cannot wedge the whole cleanup.
func (s *CleanupService) Sweep(ctx context.Context) {
	threshold := time.Now().AddDate(0, 0, -s.retentionDays)

	expired, err := s.articles.ListExpiredDeleted(ctx, threshold)
	if err != nil {
		log.Printf("cleanup: failed to list expired articles: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	log.Printf("cleanup: purging %d articles deleted more than %d days ago", len(expired), s.retentionDays)

	succeeded := 0
	for _, article := range expired {
		if err := s.articles.PermanentlyDelete(ctx, article.ID); err != nil {
			log.Printf("cleanup: failed to purge article %d: %v", article.ID, err)
			continue
		}
		succeeded++
	}

	log.Printf("cleanup: done, purged %d of %d", succeeded, len(expired))
}

func nextRunAt(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
