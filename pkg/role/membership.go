package role

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Membership binds exactly one user to exactly one tenant with exactly
// one role. A user may hold memberships in several tenants, but a session
// is always scoped to a single one.
type Membership struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	RoleID   uuid.UUID `json:"role_id"`
	IsActive bool      `json:"is_active"`
	// PINHash is an optional bcrypt hash used for quick re-verification
	// (e.g. point-of-sale terminals). Hashing is delegated to the
	// credential store; only comparison happens here.
	PINHash string `json:"-"`
}

// VerifyPIN compares a plaintext PIN against the stored bcrypt hash.
// Returns ErrInvalidPIN on mismatch or when no PIN is set.
func (m Membership) VerifyPIN(pin string) error {
	if m.PINHash == "" {
		return ErrInvalidPIN
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PINHash), []byte(pin)); err != nil {
		return errors.Join(ErrInvalidPIN, err)
	}
	return nil
}
