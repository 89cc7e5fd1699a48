package authz

import "errors"

var (
	// ErrPermissionDenied is returned when the required permission is not
	// granted.
	ErrPermissionDenied = errors.New("authz.permission_denied")

	// ErrMembershipInactive is returned when the membership exists but has
	// been deactivated.
	ErrMembershipInactive = errors.New("authz.membership_inactive")

	// ErrNoGrantsInContext is returned when a permission check runs on a
	// request that never went through the grant-loading middleware.
	ErrNoGrantsInContext = errors.New("authz.no_grants_in_context")
)
