package service

import (
	"context"
	"log"
	"sync"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

// VisitService ingests page visits off the request path. Record never blocks
// and never fails from the caller's point of view; the workers deduplicate
// per visitor, page and calendar day, and bump the article view counter for
// first visits.
type VisitService interface {
	Record(visit domain.Visit)
	Close()
}

type visitService struct {
	visitLogRepo repository.VisitLogRepository
	articleRepo  repository.ArticleRepository

	queue chan domain.Visit
	wg    sync.WaitGroup

	closeOnce sync.Once

	// Injectable for tests; defaults to time.Now.
	now func() time.Time
}

func NewVisitService(visitLogRepo repository.VisitLogRepository, articleRepo repository.ArticleRepository, queueSize, workers int) VisitService {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}

	s := &visitService{
		visitLogRepo: visitLogRepo,
		articleRepo:  articleRepo,
		queue:        make(chan domain.Visit, queueSize),
		now:          time.Now,
	}

	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go s.worker()
	}

	return s
}

// Record enqueues the visit without blocking the request. Analytics is
// best-effort: when the queue is full the visit is dropped.
func (s *visitService) Record(visit domain.Visit) {
	select {
	case s.queue <- visit:
	default:
		log.Printf("visit queue full, dropping visit for %s", visit.PageURL)
	}
}

// Close stops intake and waits for the workers to drain what was queued.
func (s *visitService) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

func (s *visitService) worker() {
	defer s.wg.Done()
	for visit := range s.queue {
		s.ingest(visit)
	}
}

// ingest runs entirely off the request thread. Every failure is logged and
// swallowed; nothing here may ever surface to a page load.
func (s *visitService) ingest(visit domain.Visit) {
	ctx := context.Background()
	today := s.today()

	exists, err := s.visitLogRepo.Exists(ctx, visit.VisitorID, visit.ArticleID, today)
	if err != nil {
		log.Printf("failed to check visit log: %v", err)
		return
	}
	if exists {
		return
	}

	entry := &domain.VisitLog{
		VisitorID: visit.VisitorID,
		ArticleID: visit.ArticleID,
		VisitDate: today,
		PageURL:   visit.PageURL,
		IPAddress: visit.IPAddress,
		UserAgent: visit.UserAgent,
		Referer:   visit.Referer,
	}

	inserted, err := s.visitLogRepo.Insert(ctx, entry)
	if err != nil {
		log.Printf("failed to save visit log: %v", err)
		return
	}

	if inserted && visit.ArticleID != nil {
		if err := s.articleRepo.IncrementViews(ctx, *visit.ArticleID); err != nil {
			log.Printf("failed to increment views for article %d: %v", *visit.ArticleID, err)
		}
	}
}

func (s *visitService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
