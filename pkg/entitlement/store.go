package entitlement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Enablement is the entitlement relation between a tenant and a module.
// Its existence is the sole source of truth for "module X is active for
// tenant Y".
type Enablement struct {
	TenantID  uuid.UUID      `json:"tenant_id"`
	ModuleID  string         `json:"module_id"`
	EnabledAt time.Time      `json:"enabled_at"`
	Config    map[string]any `json:"config,omitempty"`
}

// Store persists enablement records and supplies the mutual-exclusion
// scope that serializes enable/disable per tenant.
type Store interface {
	// ListEnabled returns all enablement records for the tenant.
	ListEnabled(ctx context.Context, tenantID uuid.UUID) ([]Enablement, error)

	// Create persists a new enablement record. Creating an existing
	// (tenant, module) pair is a no-op.
	Create(ctx context.Context, e Enablement) error

	// Delete removes the enablement record for the (tenant, module) pair.
	// Deleting an absent record is a no-op.
	Delete(ctx context.Context, tenantID uuid.UUID, moduleID string) error

	// WithinTenantLock runs fn while holding a mutual-exclusion scope for
	// the tenant. All reads and writes inside fn observe a consistent view;
	// two concurrent calls for the same tenant never interleave their
	// check-then-act sequences. The context passed to fn must be used for
	// all store calls made inside it.
	WithinTenantLock(ctx context.Context, tenantID uuid.UUID, fn func(ctx context.Context) error) error
}
