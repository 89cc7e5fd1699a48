package role

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/workhubhq/workhub/pkg/permission"
)

// Kind distinguishes platform-defined system roles from tenant-created
// custom roles. The owner role is a tagged variant rather than a magic
// slug comparison scattered through the codebase.
type Kind string

const (
	// KindOwner marks the immutable owner role that always holds the
	// universal grant.
	KindOwner Kind = "owner"

	// KindSystem marks platform-defined roles that exist for every tenant
	// (e.g. admin, member) and may receive module defaults.
	KindSystem Kind = "system"

	// KindCustom marks tenant-created roles.
	KindCustom Kind = "custom"
)

// OwnerSlug is the canonical slug of the owner role.
const OwnerSlug = "owner"

// Role grants a set of permissions to memberships holding it.
// TenantID is nil for system role templates that are not yet bound
// to a tenant.
type Role struct {
	ID          uuid.UUID               `json:"id"`
	TenantID    *uuid.UUID              `json:"tenant_id,omitempty"`
	Name        string                  `json:"name"`
	Slug        string                  `json:"slug"`
	Kind        Kind                    `json:"kind"`
	Permissions []permission.Permission `json:"permissions"`
}

// IsOwner reports whether the role is the immutable owner role.
func (r Role) IsOwner() bool {
	return r.Kind == KindOwner
}

// Can reports whether the role's own grants satisfy the required permission.
func (r Role) Can(required permission.Permission) bool {
	return permission.Matches(r.Permissions, required)
}

// NewOwnerRole builds the owner role for a tenant. It always carries the
// universal grant and nothing else.
func NewOwnerRole(tenantID uuid.UUID) Role {
	tid := tenantID
	return Role{
		ID:          uuid.New(),
		TenantID:    &tid,
		Name:        "Owner",
		Slug:        OwnerSlug,
		Kind:        KindOwner,
		Permissions: []permission.Permission{permission.Wildcard},
	}
}

// Validate enforces the role invariants before persistence:
// permission grammar, non-empty grants for active roles, and the
// owner role holding exactly the universal grant.
func Validate(r Role) error {
	if r.Slug == "" {
		return errors.Join(ErrInvalidRole, errors.New("role slug is empty"))
	}

	if r.IsOwner() {
		if len(r.Permissions) != 1 || r.Permissions[0] != permission.Wildcard {
			return errors.Join(ErrOwnerRoleImmutable,
				fmt.Errorf("owner role must hold exactly the universal grant, got %v", r.Permissions))
		}
		return nil
	}

	if len(r.Permissions) == 0 {
		return errors.Join(ErrInvalidRole, fmt.Errorf("role %q has no permissions", r.Slug))
	}

	return permission.ValidateAll(r.Permissions)
}
