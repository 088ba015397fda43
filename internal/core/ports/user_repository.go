package ports

import (
	"context"

	"github.com/inkwell/content-service/internal/core/domain"
)

// UserRepository defines persistence operations for accounts. Email equality
// is case-sensitive as stored; uniqueness is enforced by the store itself.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
