package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/content-service/internal/api/metrics"
	"github.com/inkwell/content-service/internal/core/domain"
	"github.com/inkwell/content-service/internal/core/ports"
)

// PostService implements post creation and listing for authenticated users.
type PostService struct {
	posts  ports.PostRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, audit ports.AuditRecorder, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, audit: audit, logger: logger}
}

// Create stores a new post owned by userID.
func (s *PostService) Create(ctx context.Context, userID int64, input ports.CreatePostInput) (*domain.Post, error) {
	if input.Title == "" || input.Content == "" {
		return nil, domain.ErrInvalidInput
	}

	post := &domain.Post{
		UserID:    userID,
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.posts.Insert(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create post")
		return nil, err
	}

	metrics.PostsCreatedTotal.Inc()
	s.audit.Record(domain.AuditEvent{
		Subject:   strconv.FormatInt(userID, 10),
		Action:    domain.AuditPostCreate,
		Detail:    created.Title,
		Success:   true,
		Timestamp: time.Now().UTC(),
	})
	return created, nil
}

// ListByUser returns the posts owned by userID, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID int64) ([]*domain.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}
