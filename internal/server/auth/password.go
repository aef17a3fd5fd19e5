package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest secret bcrypt accepts.
const MaxPasswordBytes = 72

// ErrEmptyPassword is returned by Hash for an empty secret.
var ErrEmptyPassword = errors.New("empty password")

// PasswordHasher turns secrets into salted bcrypt hashes and checks secrets
// against them. It is immutable and safe for concurrent use.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. A cost
// outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a self-describing bcrypt hash ($2a$<cost>$<salt><digest>)
// with a fresh random salt, so two calls never return the same string.
func (h *PasswordHasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether secret matches hashed. A wrong secret, an empty
// secret and a malformed hash all yield false.
func (h *PasswordHasher) Verify(secret, hashed string) bool {
	if secret == "" || hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}

// IsHashed reports whether s parses as a bcrypt hash. Storage uses it to
// refuse anything that could be a plaintext secret.
func IsHashed(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
