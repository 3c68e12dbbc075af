package auth

import (
	"errors"
	"fmt"

	"github.com/bookcook/api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used for stored passwords.
const DefaultCost = 10

// bcrypt only looks at the first 72 bytes of its input.
const maxPasswordBytes = 72

// ErrPasswordTooLong is returned when a password cannot be hashed by bcrypt.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// Hasher hashes and verifies passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. A cost outside bcrypt's bounds falls back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the bcrypt cost used by Hash.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt hash of a plaintext password.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AnswersMatch reports whether every submitted answer equals the stored answer at the
// same position. Answers are compared exactly, and the counts must agree.
func AnswersMatch(stored, submitted []models.SecurityQuestion) bool {
	if len(stored) != len(submitted) {
		return false
	}
	for i := range stored {
		if stored[i].Answer != submitted[i].Answer {
			return false
		}
	}
	return true
}
