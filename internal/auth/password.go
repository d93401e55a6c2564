package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns credential passwords into stored values and checks
// them at login. Passwords are digested with SHA-256 before bcrypt, so any
// length is accepted and bytes past bcrypt's 72-byte limit still count.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost. A cost
// outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the stored form of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	stored, err := bcrypt.GenerateFromPassword(digest(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt cost %d: %w", h.cost, err)
	}
	return string(stored), nil
}

// Verify reports whether password produced stored.
func (h *PasswordHasher) Verify(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), digest(password)) == nil
}

// digest is the base64 SHA-256 of password: 44 bytes, no NULs.
func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
