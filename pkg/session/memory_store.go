package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with in-memory storage, for tests and
// single-process deployments. An optional janitor goroutine purges expired
// records periodically.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ticker   *time.Ticker
	done     chan struct{}
}

// NewMemoryStore creates an in-memory session store. A positive
// cleanupInterval starts the background janitor; Close stops it.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// FindByTokenHash retrieves a session by its token hash.
func (m *MemoryStore) FindByTokenHash(ctx context.Context, hash string) (*Session, error) {
	m.mu.RLock()
	s, exists := m.sessions[hash]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if s.IsExpired() {
		m.mu.Lock()
		delete(m.sessions, hash)
		m.mu.Unlock()
		return nil, ErrSessionExpired
	}

	cp := *s
	return &cp, nil
}

// Create persists a new session record.
func (m *MemoryStore) Create(ctx context.Context, s *Session) error {
	if s == nil || s.TokenHash == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	m.sessions[s.TokenHash] = &cp
	return nil
}

// Delete removes a session by token hash.
func (m *MemoryStore) Delete(ctx context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, hash)
	return nil
}

// DeleteByUserID removes every session of the user.
func (m *MemoryStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for hash, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, hash)
		}
	}
	return nil
}

// DeleteExpired removes all expired session records.
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for hash, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, hash)
		}
	}
	return nil
}

// Close stops the janitor goroutine.
func (m *MemoryStore) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		close(m.done)
	}
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
