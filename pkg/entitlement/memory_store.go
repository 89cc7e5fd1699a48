package entitlement

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and single-process
// deployments. Per-tenant serialization uses a keyed mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]map[string]Enablement

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

// NewMemoryStore creates an empty in-memory enablement store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]map[string]Enablement),
		locks:   make(map[uuid.UUID]*sync.Mutex),
	}
}

// ListEnabled returns all enablement records for the tenant, ordered by
// module id.
func (s *MemoryStore) ListEnabled(ctx context.Context, tenantID uuid.UUID) ([]Enablement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byModule := s.records[tenantID]
	out := make([]Enablement, 0, len(byModule))
	for _, e := range byModule {
		out = append(out, copyEnablement(e))
	}
	slices.SortFunc(out, func(a, b Enablement) int {
		switch {
		case a.ModuleID < b.ModuleID:
			return -1
		case a.ModuleID > b.ModuleID:
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

// Create persists a new enablement record; existing pairs are left intact.
func (s *MemoryStore) Create(ctx context.Context, e Enablement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byModule, ok := s.records[e.TenantID]
	if !ok {
		byModule = make(map[string]Enablement)
		s.records[e.TenantID] = byModule
	}
	if _, exists := byModule[e.ModuleID]; exists {
		return nil
	}
	byModule[e.ModuleID] = copyEnablement(e)
	return nil
}

// Delete removes the enablement record for the pair.
func (s *MemoryStore) Delete(ctx context.Context, tenantID uuid.UUID, moduleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if byModule, ok := s.records[tenantID]; ok {
		delete(byModule, moduleID)
	}
	return nil
}

// WithinTenantLock serializes fn against other calls for the same tenant.
func (s *MemoryStore) WithinTenantLock(ctx context.Context, tenantID uuid.UUID, fn func(ctx context.Context) error) error {
	lock := s.tenantLock(tenantID)
	lock.Lock()
	defer lock.Unlock()

	return fn(ctx)
}

func (s *MemoryStore) tenantLock(tenantID uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[tenantID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[tenantID] = lock
	}
	return lock
}

func copyEnablement(e Enablement) Enablement {
	cp := e
	if e.Config != nil {
		cp.Config = make(map[string]any, len(e.Config))
		maps.Copy(cp.Config, e.Config)
	}
	return cp
}
