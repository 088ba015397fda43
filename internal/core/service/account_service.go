package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/content-service/internal/api/metrics"
	"github.com/inkwell/content-service/internal/auth/password"
	"github.com/inkwell/content-service/internal/auth/token"
	"github.com/inkwell/content-service/internal/core/domain"
	"github.com/inkwell/content-service/internal/core/ports"
)

// AccountService implements registration, login, and the authenticated
// account workflows.
type AccountService struct {
	users  ports.UserRepository
	posts  ports.PostRepository
	hasher *password.Hasher
	tokens *token.Manager
	emails ports.EmailReserver
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewAccountService(
	users ports.UserRepository,
	posts ports.PostRepository,
	hasher *password.Hasher,
	tokens *token.Manager,
	emails ports.EmailReserver,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		users:  users,
		posts:  posts,
		hasher: hasher,
		tokens: tokens,
		emails: emails,
		audit:  audit,
		logger: logger,
	}
}

// Register creates a new account. The email pre-check gives a fast, friendly
// error; the store's unique index is what actually guarantees uniqueness, so
// a duplicate-key failure from Insert surfaces as ErrUserExists too.
func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Age <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	reserved, err := s.emails.Reserve(ctx, input.Email)
	if err != nil {
		// Reservation is best effort; the unique index still protects us.
		s.logger.Warn().Err(err).Msg("email reservation unavailable")
	} else if !reserved {
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Lastname:     input.Lastname,
		Age:          input.Age,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		s.releaseEmail(input.Email)
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.recordAudit(strconv.FormatInt(created.ID, 10), domain.AuditRegister, created.Email, true)
	s.logger.Info().Int64("user_id", created.ID).Msg("account registered")
	return created, nil
}

// Login verifies credentials and issues a bearer token. A missing account and
// a wrong password surface as distinct errors, matching the rest of the API
// surface.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		s.recordAudit(email, domain.AuditLoginFailed, "password mismatch", false)
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.recordAudit(strconv.FormatInt(user.ID, 10), domain.AuditLogin, "", true)
	return tok, user, nil
}

// Settings returns the authenticated account's profile.
func (s *AccountService) Settings(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Update applies profile changes to the authenticated account. A non-empty
// Password is re-hashed; changing email can surface ErrUserExists from the
// unique index.
func (s *AccountService) Update(ctx context.Context, userID int64, input ports.UpdateAccountInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Lastname != "" {
		user.Lastname = input.Lastname
	}
	if input.Age > 0 {
		user.Age = input.Age
	}
	if input.Email != "" && input.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
			return nil, domain.ErrUserExists
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = input.Email
	}
	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.recordAudit(strconv.FormatInt(userID, 10), domain.AuditAccountUpdate, "", true)
	return updated, nil
}

// Delete removes the authenticated account and every post it owns.
func (s *AccountService) Delete(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.posts.DeleteByUser(ctx, userID); err != nil {
		// The account is gone; orphaned posts are only worth a warning.
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to delete user posts")
	}
	s.recordAudit(strconv.FormatInt(userID, 10), domain.AuditAccountDelete, "", true)
	s.logger.Info().Int64("user_id", userID).Msg("account deleted")
	return nil
}

// ListUsers returns every registered account.
func (s *AccountService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *AccountService) releaseEmail(email string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.emails.Release(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to release email reservation")
	}
}

func (s *AccountService) recordAudit(subject, action, detail string, success bool) {
	s.audit.Record(domain.AuditEvent{
		Subject:   subject,
		Action:    action,
		Detail:    detail,
		Success:   success,
		Timestamp: time.Now().UTC(),
	})
}
