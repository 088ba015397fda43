// Package password wraps salted bcrypt hashing behind a small surface the
// account workflows and their tests share.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password must not be empty")
var ErrHashingFailure = errors.New("password hashing failure")

// Hasher produces and verifies one-way password hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// valid bcrypt range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted one-way hash of plaintext. The salt is generated per
// call and embedded in the output, so two calls on the same input produce
// distinct hashes that both verify.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. The comparison re-derives
// from the embedded salt and runs in constant time. A malformed hash verifies
// as false rather than erroring; unauthenticated callers must never learn why
// a check failed.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
