package role

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation for tests and
// single-process deployments. It is safe for concurrent use and makes
// defensive copies so callers cannot mutate stored records.
type MemoryStore struct {
	mu          sync.RWMutex
	roles       map[uuid.UUID]Role
	memberships map[uuid.UUID]Membership
}

// NewMemoryStore creates an empty in-memory role store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		roles:       make(map[uuid.UUID]Role),
		memberships: make(map[uuid.UUID]Membership),
	}
}

// GetRole retrieves a role by id.
func (s *MemoryStore) GetRole(ctx context.Context, id uuid.UUID) (Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.roles[id]
	if !ok {
		return Role{}, ErrRoleNotFound
	}
	return copyRole(r), nil
}

// GetRoleBySlug retrieves a tenant's role by slug.
func (s *MemoryStore) GetRoleBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.roles {
		if r.Slug == slug && r.TenantID != nil && *r.TenantID == tenantID {
			return copyRole(r), nil
		}
	}
	return Role{}, ErrRoleNotFound
}

// ListTenantRoles returns every role owned by the tenant.
func (s *MemoryStore) ListTenantRoles(ctx context.Context, tenantID uuid.UUID) ([]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var roles []Role
	for _, r := range s.roles {
		if r.TenantID != nil && *r.TenantID == tenantID {
			roles = append(roles, copyRole(r))
		}
	}

	slices.SortFunc(roles, func(a, b Role) int {
		switch {
		case a.Slug < b.Slug:
			return -1
		case a.Slug > b.Slug:
			return 1
		default:
			return 0
		}
	})

	return roles, nil
}

// SaveRole validates and persists a role. Updating the owner role is
// rejected; creating it (tenant provisioning) is allowed.
func (s *MemoryStore) SaveRole(ctx context.Context, r Role) error {
	if err := Validate(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.roles[r.ID]; ok && existing.IsOwner() {
		return ErrOwnerRoleImmutable
	}

	s.roles[r.ID] = copyRole(r)
	return nil
}

// DeleteRole removes a role. The owner role cannot be deleted.
func (s *MemoryStore) DeleteRole(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.roles[id]
	if !ok {
		return ErrRoleNotFound
	}
	if r.IsOwner() {
		return ErrOwnerRoleImmutable
	}

	delete(s.roles, id)
	return nil
}

// GetMembership retrieves the membership of a user in a tenant.
func (s *MemoryStore) GetMembership(ctx context.Context, userID, tenantID uuid.UUID) (Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.memberships {
		if m.UserID == userID && m.TenantID == tenantID {
			return m, nil
		}
	}
	return Membership{}, ErrMembershipNotFound
}

// PutMembership stores a membership record. Intended for tests and
// provisioning flows; membership lifecycle is otherwise external.
func (s *MemoryStore) PutMembership(ctx context.Context, m Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memberships[m.ID] = m
	return nil
}

func copyRole(r Role) Role {
	cp := r
	if r.TenantID != nil {
		tid := *r.TenantID
		cp.TenantID = &tid
	}
	cp.Permissions = slices.Clone(r.Permissions)
	return cp
}
