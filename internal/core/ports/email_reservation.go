package ports

import "context"

// EmailReserver holds short-lived registration reservations, narrowing the
// window between the duplicate-email pre-check and the insert. The store's
// unique index remains the authoritative race-safety mechanism.
type EmailReserver interface {
	// Reserve claims email for the duration of a registration attempt.
	// Returns false when another in-flight registration already holds it.
	Reserve(ctx context.Context, email string) (bool, error)
	Release(ctx context.Context, email string) error
}
