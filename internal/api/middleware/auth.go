package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vaultkeep/notes-service/internal/api/metrics"
	"github.com/vaultkeep/notes-service/internal/core/domain"
	"github.com/vaultkeep/notes-service/internal/core/token"
)

// principalKey is the echo context key under which the authenticated
// Principal is stored for the remainder of the request.
const principalKey = "principal"

// Authenticate extracts and verifies the bearer token, attaching a Principal
// to the request context on success. It never rejects a request itself: a
// missing, malformed, expired, or tampered token simply leaves no Principal
// behind, and the route gate decides whether that matters. Verification
// failures are indistinguishable to the client but are logged by class for
// audit.
func Authenticate(codec *token.Codec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return next(c)
			}

			claims, err := codec.Verify(raw, time.Now().UTC())
			if err != nil {
				outcome := verifyOutcome(err)
				metrics.TokenVerificationsTotal.WithLabelValues(outcome).Inc()
				log.Warn().
					Str("outcome", outcome).
					Str("path", c.Path()).
					Msg("bearer token rejected")
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(principalKey, &domain.Principal{
				UserID:   claims.UserID,
				Username: claims.Subject,
				Roles:    claims.Roles,
			})
			return next(c)
		}
	}
}

// PrincipalFrom returns the request's Principal, or nil when the request is
// anonymous.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

// bearerToken pulls the token out of "Authorization: Bearer <token>".
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func verifyOutcome(err error) string {
	switch {
	case errors.Is(err, token.ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, token.ErrExpired):
		return "expired"
	default:
		return "malformed"
	}
}
