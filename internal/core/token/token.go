// Package token issues and verifies the signed session tokens that carry an
// authenticated identity between requests. Tokens are HS256 JWTs: url-safe,
// tamper-evident, and time-bounded. The signing key is injected once at
// construction and immutable afterwards.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures are distinguished internally for audit logging only;
// at the transport boundary all three collapse into "unauthenticated".
var (
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature invalid")
	ErrExpired      = errors.New("token expired")
)

// Claims is the payload carried inside a session token. Roles are the
// snapshot taken at issuance; they are not re-checked against the store
// until the next login.
type Claims struct {
	UserID string   `json:"uid"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a symmetric key.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

// NewCodec returns a Codec. A non-positive lifetime defaults to 24h.
func NewCodec(secret string, lifetime time.Duration) *Codec {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), lifetime: lifetime}
}

// Lifetime returns the configured token validity window.
func (c *Codec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue produces a signed token for the given identity, valid for the
// configured lifetime starting at now.
func (c *Codec) Issue(userID, username string, roles []string, now time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses raw and validates its signature and expiry against now.
// The signature is checked before any claim is trusted: a tampered token
// fails with ErrBadSignature even when its expiry has also passed, so the
// two failure classes are not distinguishable by timing the expiry check.
func (c *Codec) Verify(raw string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Strict base64: non-canonical trailing bits must not decode to the
		// same token, otherwise a byte-tampered string could still verify.
		jwt.WithStrictDecoding())
	if err != nil {
		return nil, classify(err)
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrMalformed
	}
	// jwt treats a token as live until strictly after its expiry instant;
	// here a token whose lifetime has fully elapsed is already invalid.
	if !now.Before(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}
	return claims, nil
}

// classify maps jwt/v5 parse errors onto the codec's internal taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
