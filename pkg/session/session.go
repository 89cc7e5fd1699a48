package session

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an authenticated user to exactly one tenant for a fixed
// lifetime. Records are immutable once created; revocation is deletion.
// Only the hash of the token is ever stored.
type Session struct {
	TokenHash string    `json:"token_hash"`
	UserID    uuid.UUID `json:"user_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

// IsExpired reports whether the session lifetime has passed.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// TTL returns the remaining lifetime, zero if already expired.
func (s *Session) TTL() time.Duration {
	if s == nil {
		return 0
	}
	if d := time.Until(s.ExpiresAt); d > 0 {
		return d
	}
	return 0
}
