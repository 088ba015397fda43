// Package token issues and verifies the HS256 bearer tokens that carry the
// service's single identity claim. The signing secret is fixed at
// construction and shared read-only across all concurrent calls.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")
var ErrMalformedClaim = errors.New("token subject malformed")

// DefaultTTL is the token lifetime applied when none is configured.
const DefaultTTL = 24 * time.Hour

// Claim is the verified payload of an accepted token.
type Claim struct {
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Manager signs and verifies bearer tokens with a symmetric secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Manager)

// WithClock overrides the time source used for issuance and expiry checks.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager builds a Manager. An empty secret is a configuration defect and
// is rejected here, at startup, never per request.
func NewManager(secret string, ttl time.Duration, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue creates a signed token whose subject is userID and whose validity
// window is [now, now+ttl].
func (m *Manager) Issue(userID int64) (string, error) {
	if userID <= 0 {
		return "", ErrMalformedClaim
	}

	now := m.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify parses tok, recomputes the signature, and checks expiry against the
// manager's clock. A mis-signed, unsigned, or structurally broken token is
// indistinguishable from garbage input: all of those surface ErrTokenInvalid.
// Only expiry and a non-positive-integer subject are distinguished, for
// internal logging.
func (m *Manager) Verify(tok string) (*Claim, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrMalformedClaim
	}

	claim := &Claim{UserID: userID}
	if claims.IssuedAt != nil {
		claim.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		claim.ExpiresAt = claims.ExpiresAt.Time
	}
	return claim, nil
}
