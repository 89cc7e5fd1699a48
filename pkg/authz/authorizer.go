package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/workhubhq/workhub/pkg/permission"
	"github.com/workhubhq/workhub/pkg/role"
)

// Authorizer gates operations on the membership's role: user and tenant
// resolve to a membership, the membership to a role, and the role's grants
// are evaluated by the permission matcher.
type Authorizer struct {
	roles role.Store
}

// New creates an authorizer over the role store.
func New(roles role.Store) *Authorizer {
	return &Authorizer{roles: roles}
}

// Can checks whether the user's membership in the tenant grants the
// required permission.
func (a *Authorizer) Can(ctx context.Context, userID, tenantID uuid.UUID, required permission.Permission) error {
	granted, err := a.Grants(ctx, userID, tenantID)
	if err != nil {
		return err
	}
	if !permission.Matches(granted, required) {
		return ErrPermissionDenied
	}
	return nil
}

// CanAll checks whether the membership grants every required permission.
func (a *Authorizer) CanAll(ctx context.Context, userID, tenantID uuid.UUID, required ...permission.Permission) error {
	granted, err := a.Grants(ctx, userID, tenantID)
	if err != nil {
		return err
	}
	if !permission.MatchesAll(granted, required...) {
		return ErrPermissionDenied
	}
	return nil
}

// CanAny checks whether the membership grants at least one of the required
// permissions.
func (a *Authorizer) CanAny(ctx context.Context, userID, tenantID uuid.UUID, required ...permission.Permission) error {
	granted, err := a.Grants(ctx, userID, tenantID)
	if err != nil {
		return err
	}
	if !permission.MatchesAny(granted, required...) {
		return ErrPermissionDenied
	}
	return nil
}

// CanRole checks the required permission directly against a role, for
// callers that already hold the resolved role.
func CanRole(r role.Role, required permission.Permission) error {
	if !r.Can(required) {
		return ErrPermissionDenied
	}
	return nil
}

// Grants resolves the permission set of the user's membership in the
// tenant. Inactive memberships resolve to nothing.
func (a *Authorizer) Grants(ctx context.Context, userID, tenantID uuid.UUID) ([]permission.Permission, error) {
	m, err := a.roles.GetMembership(ctx, userID, tenantID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, errors.Join(ErrPermissionDenied, ErrMembershipInactive)
	}

	r, err := a.roles.GetRole(ctx, m.RoleID)
	if err != nil {
		return nil, err
	}

	return r.Permissions, nil
}
