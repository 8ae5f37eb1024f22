package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
	"inkwell/internal/sanitize"
)

const commentTreeCacheTTL = 5 * time.Minute

type CommentService interface {
	// Create validates, sanitizes and persists a visitor comment, then
	// refreshes the owning article's denormalized comment count.
	Create(ctx context.Context, input domain.CreateCommentInput, ip, userAgent string) (*domain.Comment, error)

	// GetTree returns the approved comments of an article as a forest,
	// creation order at every level.
	GetTree(ctx context.Context, articleID int64) ([]*domain.Comment, error)

	// Delete soft-deletes a comment and its whole subtree.
	Delete(ctx context.Context, id int64) error

	// Moderate moves a comment between approved and pending.
	Moderate(ctx context.Context, id int64, status domain.CommentStatus) error

	ListForAdmin(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.AdminComment], error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
	redis       *redis.Client
	email       EmailService

	// Status assigned to new comments. Approved unless moderation is on.
	initialStatus domain.CommentStatus
}

func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository, redis *redis.Client, email EmailService, moderation bool) CommentService {
	initial := domain.CommentApproved
	if moderation {
		initial = domain.CommentPending
	}
	return &commentService{
		commentRepo:   commentRepo,
		articleRepo:   articleRepo,
		redis:         redis,
		email:         email,
		initialStatus: initial,
	}
}

func (s *commentService) Create(ctx context.Context, input domain.CreateCommentInput, ip, userAgent string) (*domain.Comment, error) {
	exists, err := s.articleRepo.ExistsByID(ctx, input.ArticleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrArticleNotFound
	}

	if input.ParentID != nil {
		// Replying to a pending or deleted comment is allowed; the parent
		// just has to exist and belong to the same article.
		parent, err := s.commentRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.ArticleID != input.ArticleID {
			return nil, ErrParentNotFound
		}
	}

	comment := &domain.Comment{
		ArticleID: input.ArticleID,
		ParentID:  input.ParentID,
		Nickname:  sanitize.Strict(input.Nickname),
		Email:     sanitize.Strict(input.Email),
		Website:   sanitize.Strict(input.Website),
		Avatar:    sanitize.Strict(input.Avatar),
		Content:   sanitize.Content(input.Content),
		IPAddress: ip,
		UserAgent: userAgent,
		Status:    s.initialStatus,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.refreshCommentCount(ctx, comment.ArticleID); err != nil {
		return nil, err
	}
	s.invalidateTreeCache(ctx, comment.ArticleID)

	if s.email != nil {
		go func(c domain.Comment) {
			if err := s.email.SendCommentNotification(context.Background(), &c); err != nil {
				log.Printf("failed to send comment notification: %v", err)
			}
		}(*comment)
	}

	return comment, nil
}

func (s *commentService) GetTree(ctx context.Context, articleID int64) ([]*domain.Comment, error) {
	cacheKey := fmt.Sprintf("comments:tree:%d", articleID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var tree []*domain.Comment
			if json.Unmarshal([]byte(cached), &tree) == nil {
				return tree, nil
			}
		}
	}

	// One pass over the article's approved comments; depth does not add
	// queries.
	comments, err := s.commentRepo.ListByArticleAndStatus(ctx, articleID, domain.CommentApproved)
	if err != nil {
		return nil, err
	}

	tree := buildTree(comments)

	if s.redis != nil {
		if data, err := json.Marshal(tree); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, commentTreeCacheTTL).Err()
		}
	}

	return tree, nil
}

// buildTree partitions a creation-ordered flat list into children lists and
// assembles the forest from the roots. Approved children of a hidden parent
// have no attachment point and stay out, which is the intended behavior.
func buildTree(comments []domain.Comment) []*domain.Comment {
	children := make(map[int64][]*domain.Comment)
	tree := []*domain.Comment{}

	nodes := make([]*domain.Comment, len(comments))
	for i := range comments {
		nodes[i] = &comments[i]
	}

	for _, c := range nodes {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var attach func(node *domain.Comment)
	attach = func(node *domain.Comment) {
		node.Children = children[node.ID]
		for _, child := range node.Children {
			attach(child)
		}
	}

	for _, c := range nodes {
		if c.ParentID == nil {
			attach(c)
			tree = append(tree, c)
		}
	}

	return tree
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	// Breadth-first collection of the subtree. Parents are only ever
	// assigned at creation to existing ids, so the graph is acyclic; the
	// seen set guards against repeats all the same.
	ids := []int64{id}
	seen := map[int64]bool{id: true}
	frontier := []int64{id}

	for len(frontier) > 0 {
		childIDs, err := s.commentRepo.ListChildIDs(ctx, frontier)
		if err != nil {
			return err
		}

		frontier = frontier[:0]
		for _, childID := range childIDs {
			if seen[childID] {
				continue
			}
			seen[childID] = true
			ids = append(ids, childID)
			frontier = append(frontier, childID)
		}
	}

	if err := s.commentRepo.MarkDeleted(ctx, ids); err != nil {
		return err
	}

	// One recompute for the whole cascade, after the batch is marked.
	if err := s.refreshCommentCount(ctx, comment.ArticleID); err != nil {
		return err
	}
	s.invalidateTreeCache(ctx, comment.ArticleID)

	log.Printf("deleted comment %d and %d descendants", id, len(ids)-1)
	return nil
}

func (s *commentService) Moderate(ctx context.Context, id int64, status domain.CommentStatus) error {
	if status != domain.CommentApproved && status != domain.CommentPending {
		return ErrInvalidStatus
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.Status == domain.CommentDeleted {
		return ErrCommentDeleted
	}

	if err := s.commentRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	// Approved and pending both count toward comment_count, so this is a
	// no-op for the value; recomputing after every mutation keeps the
	// invariant correct by construction.
	if err := s.refreshCommentCount(ctx, comment.ArticleID); err != nil {
		return err
	}
	s.invalidateTreeCache(ctx, comment.ArticleID)

	return nil
}

func (s *commentService) ListForAdmin(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.AdminComment], error) {
	comments, total, err := s.commentRepo.ListForAdmin(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AdminComment]{}, err
	}
	return domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total), nil
}

// refreshCommentCount recomputes the denormalized counter from the rows
// instead of applying a delta, so concurrent mutations self-heal: whichever
// recompute runs last writes a value derived from durable state.
func (s *commentService) refreshCommentCount(ctx context.Context, articleID int64) error {
	count, err := s.commentRepo.CountByArticleAndStatusNot(ctx, articleID, domain.CommentDeleted)
	if err != nil {
		return err
	}
	return s.articleRepo.UpdateCommentCount(ctx, articleID, count)
}

func (s *commentService) invalidateTreeCache(ctx context.Context, articleID int64) {
	if s.redis == nil {
		return
	}
	cacheKey := fmt.Sprintf("comments:tree:%d", articleID)
	_ = s.redis.Del(ctx, cacheKey).Err()
}
