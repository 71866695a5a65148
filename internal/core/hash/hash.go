// Package hash wraps bcrypt behind the password hashing contract: salted,
// work-factor-tunable, self-contained verification (the salt lives inside
// the encoded hash).
package hash

import "golang.org/x/crypto/bcrypt"

// Hasher hashes and verifies passwords at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher. Costs outside bcrypt's valid range fall back
// to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext. The plaintext is never logged
// or retained.
func (h *Hasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed
// stored hash yields false; no error escapes this boundary.
func (h *Hasher) Verify(plaintext, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}
