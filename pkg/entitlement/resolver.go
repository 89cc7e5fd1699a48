package entitlement

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/workhubhq/workhub/pkg/catalog"
	"github.com/workhubhq/workhub/pkg/permission"
	"github.com/workhubhq/workhub/pkg/role"
)

// Resolver evaluates and mutates module entitlements for tenants. All
// mutations run inside the store's per-tenant lock, so concurrent enable
// and disable calls for the same tenant never interleave.
type Resolver struct {
	registry  *catalog.Registry
	store     Store
	roles     role.Store
	intrinsic []permission.Permission
	log       *slog.Logger
	now       func() time.Time
}

// Option configures the resolver.
type Option func(*Resolver)

// WithIntrinsicPermissions registers platform permissions that exist for
// every tenant regardless of enabled modules.
func WithIntrinsicPermissions(perms ...permission.Permission) Option {
	return func(r *Resolver) {
		r.intrinsic = append(r.intrinsic, perms...)
	}
}

// WithLogger sets the logger used for entitlement mutations.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewResolver creates a resolver over a validated registry.
func NewResolver(registry *catalog.Registry, store Store, roles role.Store, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		store:    store,
		roles:    roles,
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enable activates a module for a tenant. Every declared dependency must
// already be enabled; dependencies are never auto-enabled, the caller works
// bottom-up. Enabling an already enabled module is idempotent. On success
// the module's role defaults are merged into the tenant's roles.
func (r *Resolver) Enable(ctx context.Context, tenantID uuid.UUID, moduleID string) error {
	mod, err := r.registry.Get(moduleID)
	if err != nil {
		return err
	}

	return r.store.WithinTenantLock(ctx, tenantID, func(ctx context.Context) error {
		enabled, err := r.enabledIDs(ctx, tenantID)
		if err != nil {
			return err
		}

		if slices.Contains(enabled, moduleID) {
			return nil
		}

		for _, dep := range mod.Dependencies {
			if !slices.Contains(enabled, dep) {
				return missingDependency(moduleID, dep)
			}
		}

		if err := r.store.Create(ctx, Enablement{
			TenantID:  tenantID,
			ModuleID:  moduleID,
			EnabledAt: r.now(),
		}); err != nil {
			return err
		}

		if err := r.applyRoleDefaults(ctx, tenantID, mod); err != nil {
			return err
		}

		r.log.InfoContext(ctx, "module enabled",
			slog.String("tenant_id", tenantID.String()),
			slog.String("module_id", moduleID))
		return nil
	})
}

// Disable deactivates a module for a tenant. It fails while any currently
// enabled module declares this one as a dependency. Permissions previously
// merged into roles stay in place: revoking grants is an explicit role
// edit, never a side effect of disabling a module.
func (r *Resolver) Disable(ctx context.Context, tenantID uuid.UUID, moduleID string) error {
	if _, err := r.registry.Get(moduleID); err != nil {
		return err
	}

	return r.store.WithinTenantLock(ctx, tenantID, func(ctx context.Context) error {
		enabled, err := r.enabledIDs(ctx, tenantID)
		if err != nil {
			return err
		}

		if !slices.Contains(enabled, moduleID) {
			return nil
		}

		for _, id := range enabled {
			if id == moduleID {
				continue
			}
			other, err := r.registry.Get(id)
			if err != nil {
				return err
			}
			if slices.Contains(other.Dependencies, moduleID) {
				return dependentActive(moduleID, id)
			}
		}

		if err := r.store.Delete(ctx, tenantID, moduleID); err != nil {
			return err
		}

		r.log.InfoContext(ctx, "module disabled",
			slog.String("tenant_id", tenantID.String()),
			slog.String("module_id", moduleID))
		return nil
	})
}

// EffectiveCapabilities returns the union of capabilities introduced by the
// tenant's enabled modules plus platform-intrinsic permissions. This answers
// "is the feature available for the tenant at all"; per-user checks go
// through the membership's role instead.
func (r *Resolver) EffectiveCapabilities(ctx context.Context, tenantID uuid.UUID) ([]permission.Permission, error) {
	enablements, err := r.store.ListEnabled(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	caps := slices.Clone(r.intrinsic)
	for _, e := range enablements {
		mod, err := r.registry.Get(e.ModuleID)
		if err != nil {
			// An enablement may outlive a module removed from the catalog;
			// it contributes nothing.
			continue
		}
		caps = append(caps, mod.Permissions...)
	}

	return permission.Normalize(caps), nil
}

// EnabledModules returns the definitions of the tenant's enabled modules,
// ordered by id. Enablements referencing modules no longer in the catalog
// are skipped.
func (r *Resolver) EnabledModules(ctx context.Context, tenantID uuid.UUID) ([]catalog.Module, error) {
	ids, err := r.enabledIDs(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)

	mods := make([]catalog.Module, 0, len(ids))
	for _, id := range ids {
		mod, err := r.registry.Get(id)
		if err != nil {
			continue
		}
		mods = append(mods, mod)
	}
	return mods, nil
}

func (r *Resolver) enabledIDs(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	enablements, err := r.store.ListEnabled(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(enablements))
	for i, e := range enablements {
		ids[i] = e.ModuleID
	}
	return ids, nil
}

// applyRoleDefaults merges the module's default grants into each matching
// tenant role with set union: idempotent, order-independent, and never
// removing existing grants. Roles without a matching slug are skipped, and
// the owner role is left alone since it already holds the universal grant.
func (r *Resolver) applyRoleDefaults(ctx context.Context, tenantID uuid.UUID, mod catalog.Module) error {
	if len(mod.RoleDefaults) == 0 {
		return nil
	}

	for slug, grants := range mod.RoleDefaults {
		tenantRole, err := r.roles.GetRoleBySlug(ctx, tenantID, slug)
		if err != nil {
			// Module defaults are opportunistic: no matching role, no merge.
			if errors.Is(err, role.ErrRoleNotFound) {
				continue
			}
			return err
		}
		if tenantRole.IsOwner() {
			continue
		}

		merged := permission.Normalize(append(slices.Clone(tenantRole.Permissions), grants...))
		if permission.Equal(merged, tenantRole.Permissions) {
			continue
		}

		tenantRole.Permissions = merged
		if err := r.roles.SaveRole(ctx, tenantRole); err != nil {
			return err
		}

		r.log.DebugContext(ctx, "module defaults merged into role",
			slog.String("tenant_id", tenantID.String()),
			slog.String("module_id", mod.ID),
			slog.String("role_slug", slug))
	}

	return nil
}
