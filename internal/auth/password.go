package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/crucial707/expense-tracker/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	Cost int

	// dummy is compared against when the username does not exist, so a
	// failed login costs one bcrypt comparison either way.
	dummyOnce sync.Once
	dummy     []byte
}

// NewPasswordHasher returns a hasher using cost, or bcrypt.DefaultCost when
// cost is outside bcrypt's accepted range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{Cost: cost}
}

// Hash returns a salted bcrypt hash of raw.
func (h *PasswordHasher) Hash(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty password: %w", models.ErrInvalidInput)
	}
	if len(raw) > maxPasswordBytes {
		return "", models.ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(raw), h.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", models.ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether raw matches hash. The comparison is constant-time.
func (h *PasswordHasher) Verify(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// burn performs a throwaway comparison to equalize login timing.
func (h *PasswordHasher) burn(raw string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), h.Cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(raw))
}
