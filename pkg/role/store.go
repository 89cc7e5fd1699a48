package role

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence boundary for roles and memberships.
// The authorization core consumes these records as values; storage is
// owned by the implementation.
type Store interface {
	// GetRole retrieves a role by id. Returns ErrRoleNotFound if absent.
	GetRole(ctx context.Context, id uuid.UUID) (Role, error)

	// GetRoleBySlug retrieves a tenant's role by slug.
	// Returns ErrRoleNotFound if absent.
	GetRoleBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (Role, error)

	// ListTenantRoles returns every role owned by the tenant.
	ListTenantRoles(ctx context.Context, tenantID uuid.UUID) ([]Role, error)

	// SaveRole creates or updates a role. Implementations must validate
	// the permission grammar via Validate before persisting and must
	// reject edits to the owner role's grants.
	SaveRole(ctx context.Context, r Role) error

	// DeleteRole removes a role. The owner role cannot be deleted.
	DeleteRole(ctx context.Context, id uuid.UUID) error

	// GetMembership retrieves the membership of a user in a tenant.
	// Returns ErrMembershipNotFound if absent.
	GetMembership(ctx context.Context, userID, tenantID uuid.UUID) (Membership, error)
}
