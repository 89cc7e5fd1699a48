package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Tenant is the minimal tenant record needed for request-scoped binding
// and redirects.
type Tenant struct {
	ID     uuid.UUID `json:"id"`
	Slug   string    `json:"slug"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

// Provider loads tenant records from a data source.
type Provider interface {
	// GetBySlug retrieves a tenant by its URL slug.
	// Returns ErrTenantNotFound if no tenant matches.
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
}

// SlugResolver maps a tenant id back to its slug, used to redirect a
// mismatched session to the caller's actual tenant URL.
type SlugResolver interface {
	// GetTenantSlugByID returns the slug for the tenant id.
	// Returns ErrTenantNotFound if the tenant does not exist.
	GetTenantSlugByID(ctx context.Context, id uuid.UUID) (string, error)
}
