package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Config holds session lifetime settings loaded from the environment.
type Config struct {
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"720h"`               // TTL is the fixed session lifetime set at login.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"15m"`   // CleanupInterval is how often expired records are purged.
}

// Metadata captures request attributes recorded with a session at login.
type Metadata struct {
	IPAddress string
	UserAgent string
}

// Manager owns the session lifecycle: login creates a record, logout
// deletes it. Lifetime is fixed at creation; there is no sliding renewal.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// ManagerOption configures the manager.
type ManagerOption func(*Manager)

// WithTTL sets the fixed session lifetime.
func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithManagerClock overrides the time source, used in tests.
func WithManagerClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a session manager over the store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: store,
		ttl:   30 * 24 * time.Hour,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login creates a session binding the user to the tenant and returns the
// raw token. This is the only moment the raw token exists; afterwards only
// its hash is stored.
func (m *Manager) Login(ctx context.Context, userID, tenantID uuid.UUID, meta Metadata) (string, *Session, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", nil, err
	}

	now := m.now()
	s := &Session{
		TokenHash: HashToken(token),
		UserID:    userID,
		TenantID:  tenantID,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}

	if err := m.store.Create(ctx, s); err != nil {
		return "", nil, err
	}

	return token, s, nil
}

// Logout revokes the session for the presented token. Unknown tokens are
// a no-op so logout is always safe to call.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, HashToken(token))
}

// LogoutAll revokes every session of the user across tenants, e.g. after a
// password change.
func (m *Manager) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return m.store.DeleteByUserID(ctx, userID)
}
