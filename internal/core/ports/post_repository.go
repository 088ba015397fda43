package ports

import (
	"context"

	"github.com/inkwell/content-service/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) (*domain.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Post, error)
	// DeleteByUser removes every post owned by userID. Used when an account
	// is deleted.
	DeleteByUser(ctx context.Context, userID int64) error
}
