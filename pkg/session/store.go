package session

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence boundary for session records. Sessions are
// keyed by token hash; the raw token never reaches the store.
type Store interface {
	// FindByTokenHash retrieves a session by its token hash.
	// Returns ErrSessionNotFound if absent.
	FindByTokenHash(ctx context.Context, hash string) (*Session, error)

	// Create persists a new session record.
	Create(ctx context.Context, s *Session) error

	// Delete removes a session by token hash. Deleting an absent session
	// is a no-op.
	Delete(ctx context.Context, hash string) error

	// DeleteByUserID removes every session of the user, across tenants.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes all expired session records.
	DeleteExpired(ctx context.Context) error
}
