package role

import "errors"

var (
	// ErrRoleNotFound is returned when no role matches the lookup.
	ErrRoleNotFound = errors.New("role.not_found")

	// ErrInvalidRole is returned when a role fails invariant validation.
	ErrInvalidRole = errors.New("role.invalid")

	// ErrOwnerRoleImmutable is returned on attempts to edit or delete the
	// owner role.
	ErrOwnerRoleImmutable = errors.New("role.owner_immutable")

	// ErrMembershipNotFound is returned when a user has no membership in
	// the tenant.
	ErrMembershipNotFound = errors.New("role.membership_not_found")

	// ErrInvalidPIN is returned when PIN verification fails.
	ErrInvalidPIN = errors.New("role.invalid_pin")
)
