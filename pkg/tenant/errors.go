package tenant

import "errors"

var (
	// ErrTenantNotFound indicates no tenant matches the identifier.
	ErrTenantNotFound = errors.New("tenant.not_found")

	// ErrInactiveTenant indicates the tenant exists but is deactivated.
	ErrInactiveTenant = errors.New("tenant.inactive")

	// ErrNoTenantInContext indicates a handler required a tenant but none
	// was bound to the request context.
	ErrNoTenantInContext = errors.New("tenant.not_in_context")
)
