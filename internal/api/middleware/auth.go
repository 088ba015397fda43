package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/content-service/internal/api/metrics"
	"github.com/inkwell/content-service/internal/auth/token"
)

// ContextUserID is the echo context key under which the gate stores the
// authenticated user id (int64).
const ContextUserID = "user_id"

// The scheme prefix is matched exactly: case-sensitive, single space.
const bearerPrefix = "Bearer "

// Auth enforces bearer-token authentication on protected routes. Every
// failure class collapses into one uniform 401 response; the concrete cause
// is only logged and counted, so clients cannot distinguish an expired token
// from a forged one.
func Auth(verifier *token.Manager, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return reject(c, log, "missing_credentials", nil)
			}

			if !strings.HasPrefix(header, bearerPrefix) {
				return reject(c, log, "malformed_credentials", nil)
			}

			claim, err := verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				return reject(c, log, verifyReason(err), err)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(ContextUserID, claim.UserID)

			return next(c)
		}
	}
}

func reject(c echo.Context, log zerolog.Logger, reason string, err error) error {
	metrics.TokenVerificationsTotal.WithLabelValues(reason).Inc()
	log.Warn().
		Err(err).
		Str("reason", reason).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("request rejected at auth gate")
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}

func verifyReason(err error) string {
	switch {
	case errors.Is(err, token.ErrTokenExpired):
		return "expired"
	case errors.Is(err, token.ErrMalformedClaim):
		return "malformed_subject"
	default:
		return "invalid_signature"
	}
}
