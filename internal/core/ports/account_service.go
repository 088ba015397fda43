package ports

import (
	"context"

	"github.com/inkwell/content-service/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Lastname string
	Age      int
	Email    string
	Password string
}

// UpdateAccountInput carries profile changes for the authenticated account.
// Empty string fields and a zero Age are left unchanged; a non-empty Password
// replaces the stored hash.
type UpdateAccountInput struct {
	Name     string
	Lastname string
	Age      int
	Email    string
	Password string
}

// AccountService implements the account workflows. Settings, Update, and
// Delete take a user id that must come from an already-authenticated
// identity; they perform no further authorization checks.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Settings(ctx context.Context, userID int64) (*domain.User, error)
	Update(ctx context.Context, userID int64, input UpdateAccountInput) (*domain.User, error)
	Delete(ctx context.Context, userID int64) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
