package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"inkwell/internal/domain"
)

// In-memory repositories backing the behavioral tests. They implement the
// same contracts as the sqlx repositories, including the dedup semantics of
// the visit log.

type fakeCommentRepo struct {
	mu       sync.Mutex
	nextID   int64
	comments map[int64]*domain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1, comments: make(map[int64]*domain.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = r.nextID
	r.nextID++
	comment.CreatedAt = time.Now().Add(time.Duration(comment.ID) * time.Millisecond)
	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCommentRepo) ListByArticleAndStatus(_ context.Context, articleID int64, status domain.CommentStatus) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Comment
	for id := int64(1); id < r.nextID; id++ {
		c, ok := r.comments[id]
		if ok && c.ArticleID == articleID && c.Status == status {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) ListChildIDs(_ context.Context, parentIDs []int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	parents := make(map[int64]bool, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = true
	}
	var ids []int64
	for id := int64(1); id < r.nextID; id++ {
		c, ok := r.comments[id]
		if ok && c.ParentID != nil && parents[*c.ParentID] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeCommentRepo) MarkDeleted(_ context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if c, ok := r.comments[id]; ok {
			c.Status = domain.CommentDeleted
		}
	}
	return nil
}

func (r *fakeCommentRepo) UpdateStatus(_ context.Context, id int64, status domain.CommentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[id]; ok {
		c.Status = status
	}
	return nil
}

func (r *fakeCommentRepo) CountByArticleAndStatusNot(_ context.Context, articleID int64, status domain.CommentStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.comments {
		if c.ArticleID == articleID && c.Status != status {
			count++
		}
	}
	return count, nil
}

func (r *fakeCommentRepo) ListForAdmin(_ context.Context, _ domain.CommentFilter, _ domain.PaginationParams) ([]domain.AdminComment, int64, error) {
	return nil, 0, nil
}

func (r *fakeCommentRepo) DeleteByArticleID(_ context.Context, articleID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.comments {
		if c.ArticleID == articleID {
			delete(r.comments, id)
		}
	}
	return nil
}

type fakeArticleRepo struct {
	mu       sync.Mutex
	articles map[int64]*domain.Article
}

func newFakeArticleRepo(ids ...int64) *fakeArticleRepo {
	r := &fakeArticleRepo{articles: make(map[int64]*domain.Article)}
	for _, id := range ids {
		r.articles[id] = &domain.Article{ID: id, Status: domain.ArticlePublished}
	}
	return r
}

func (r *fakeArticleRepo) Create(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	article.ID = int64(len(r.articles) + 1)
	stored := *article
	r.articles[article.ID] = &stored
	return nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id int64) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *fakeArticleRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	return ok && a.Status != domain.ArticleDeleted, nil
}

func (r *fakeArticleRepo) ListPublished(_ context.Context, _ domain.PaginationParams) ([]domain.Article, int64, error) {
	return nil, 0, nil
}

func (r *fakeArticleRepo) IncrementViews(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.articles[id]; ok {
		a.Views++
	}
	return nil
}

func (r *fakeArticleRepo) UpdateCommentCount(_ context.Context, id int64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.articles[id]; ok {
		a.CommentCount = count
	}
	return nil
}

func (r *fakeArticleRepo) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.articles[id]; ok {
		now := time.Now()
		a.Status = domain.ArticleDeleted
		a.DeletedAt = &now
	}
	return nil
}

func (r *fakeArticleRepo) ListExpiredDeleted(_ context.Context, threshold time.Time) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired []domain.Article
	for _, a := range r.articles {
		if a.Status == domain.ArticleDeleted && a.DeletedAt != nil && a.DeletedAt.Before(threshold) {
			expired = append(expired, *a)
		}
	}
	return expired, nil
}

func (r *fakeArticleRepo) HardDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) commentCount(id int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.articles[id]; ok {
		return a.CommentCount
	}
	return -1
}

func (r *fakeArticleRepo) views(id int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.articles[id]; ok {
		return a.Views
	}
	return -1
}

type visitKey struct {
	visitorID string
	articleID int64 // 0 means the non-article page
	date      string
}

type fakeVisitLogRepo struct {
	mu        sync.Mutex
	rows      map[visitKey]domain.VisitLog
	insertErr error
	existsErr error
}

func newFakeVisitLogRepo() *fakeVisitLogRepo {
	return &fakeVisitLogRepo{rows: make(map[visitKey]domain.VisitLog)}
}

func makeVisitKey(visitorID string, articleID *int64, date time.Time) visitKey {
	key := visitKey{visitorID: visitorID, date: date.Format("2006-01-02")}
	if articleID != nil {
		key.articleID = *articleID
	}
	return key
}

func (r *fakeVisitLogRepo) Exists(_ context.Context, visitorID string, articleID *int64, visitDate time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.rows[makeVisitKey(visitorID, articleID, visitDate)]
	return ok, nil
}

func (r *fakeVisitLogRepo) Insert(_ context.Context, visit *domain.VisitLog) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return false, r.insertErr
	}
	key := makeVisitKey(visit.VisitorID, visit.ArticleID, visit.VisitDate)
	if _, ok := r.rows[key]; ok {
		return false, nil
	}
	visit.ID = int64(len(r.rows) + 1)
	r.rows[key] = *visit
	return true, nil
}

func (r *fakeVisitLogRepo) DeleteByArticleID(_ context.Context, articleID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.rows {
		if key.articleID == articleID {
			delete(r.rows, key)
		}
	}
	return nil
}

func (r *fakeVisitLogRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

var errStoreDown = errors.New("store down")
