package ports

import (
	"context"

	"github.com/inkwell/content-service/internal/core/domain"
)

// CreatePostInput is the DTO passed from the transport layer to PostService.
type CreatePostInput struct {
	Title   string
	Content string
}

// PostService implements post creation and listing. Ownership is the
// authenticated user id supplied by the caller.
type PostService interface {
	Create(ctx context.Context, userID int64, input CreatePostInput) (*domain.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Post, error)
}
