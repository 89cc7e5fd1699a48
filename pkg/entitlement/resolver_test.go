package entitlement_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhubhq/workhub/pkg/catalog"
	"github.com/workhubhq/workhub/pkg/entitlement"
	"github.com/workhubhq/workhub/pkg/permission"
	"github.com/workhubhq/workhub/pkg/role"
)

func testRegistry(t *testing.T) *catalog.Registry {
	t.Helper()
	reg, err := catalog.New(context.Background(), catalog.NewStaticSource([]catalog.Module{
		{
			ID:          "core",
			Name:        "Core",
			Version:     "1.0.0",
			Permissions: []permission.Permission{"core:users:read", "core:users:write"},
			RoleDefaults: map[string][]permission.Permission{
				"admin":  {"core:users:*"},
				"member": {"core:users:read"},
			},
		},
		{
			ID:           "crm",
			Name:         "CRM",
			Version:      "0.9.0",
			Dependencies: []string{"core"},
			Permissions:  []permission.Permission{"crm:leads:read", "crm:leads:write"},
			RoleDefaults: map[string][]permission.Permission{
				"admin": {"crm:*"},
			},
		},
		{
			ID:           "reports",
			Name:         "Reports",
			Version:      "0.2.0",
			Dependencies: []string{"crm"},
			Permissions:  []permission.Permission{"reports:sales:read"},
		},
	}))
	require.NoError(t, err)
	return reg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) (*entitlement.Resolver, *role.MemoryStore, uuid.UUID) {
	t.Helper()

	roles := role.NewMemoryStore()
	resolver := entitlement.NewResolver(testRegistry(t), entitlement.NewMemoryStore(), roles,
		entitlement.WithLogger(quietLogger()))
	return resolver, roles, uuid.New()
}

func TestEnableDependencyOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	resolver, _, tenantID := newFixture(t)

	err := resolver.Enable(ctx, tenantID, "crm")
	assert.ErrorIs(t, err, entitlement.ErrMissingDependency)

	var depErr *entitlement.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "crm", depErr.ModuleID)
	assert.Equal(t, "core", depErr.RelatedID)

	require.NoError(t, resolver.Enable(ctx, tenantID, "core"))
	require.NoError(t, resolver.Enable(ctx, tenantID, "crm"))

	mods, err := resolver.EnabledModules(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "core", mods[0].ID)
	assert.Equal(t, "crm", mods[1].ID)
}

func TestEnableUnknownModule(t *testing.T) {
	t.Parallel()
	resolver, _, tenantID := newFixture(t)

	err := resolver.Enable(context.Background(), tenantID, "billing")
	assert.ErrorIs(t, err, catalog.ErrModuleNotFound)
}

func TestDisableDependentOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	resolver, _, tenantID := newFixture(t)

	require.NoError(t, resolver.Enable(ctx, tenantID, "core"))
	require.NoError(t, resolver.Enable(ctx, tenantID, "crm"))

	err := resolver.Disable(ctx, tenantID, "core")
	assert.ErrorIs(t, err, entitlement.ErrDependentModuleActive)

	var depErr *entitlement.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "core", depErr.ModuleID)
	assert.Equal(t, "crm", depErr.RelatedID)

	require.NoError(t, resolver.Disable(ctx, tenantID, "crm"))
	require.NoError(t, resolver.Disable(ctx, tenantID, "core"))

	caps, err := resolver.EffectiveCapabilities(ctx, tenantID)
	require.NoError(t, err)
	assert.Empty(t, caps)
}

func TestDisableIsIdempotent(t *testing.T) {
	t.Parallel()
	resolver, _, tenantID := newFixture(t)

	assert.NoError(t, resolver.Disable(context.Background(), tenantID, "core"))
}

func TestEnableIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	resolver, roles, tenantID := newFixture(t)

	admin := role.Role{
		ID:          uuid.New(),
		TenantID:    &tenantID,
		Name:        "Admin",
		Slug:        "admin",
		Kind:        role.KindSystem,
		Permissions: []permission.Permission{"settings:read"},
	}
	require.NoError(t, roles.SaveRole(ctx, admin))

	require.NoError(t, resolver.Enable(ctx, tenantID, "core"))
	capsOnce, err := resolver.EffectiveCapabilities(ctx, tenantID)
	require.NoError(t, err)
	roleOnce, err := roles.GetRoleBySlug(ctx, tenantID, "admin")
	require.NoError(t, err)

	require.NoError(t, resolver.Enable(ctx, tenantID, "core"))
	capsTwice, err := resolver.EffectiveCapabilities(ctx, tenantID)
	require.NoError(t, err)
	roleTwice, err := roles.GetRoleBySlug(ctx, tenantID, "admin")
	require.NoError(t, err)

	assert.Equal(t, capsOnce, capsTwice)
	assert.Equal(t, roleOnce.Permissions, roleTwice.Permissions)
}

func TestEffectiveCapabilities(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	roles := role.NewMemoryStore()
	resolver := entitlement.NewResolver(testRegistry(t), entitlement.NewMemoryStore(), roles,
		entitlement.WithLogger(quietLogger()),
		entitlement.WithIntrinsicPermissions("platform:profile:read"))
	tenantID := uuid.New()

	caps, err := resolver.EffectiveCapabilities(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, []permission.Permission{"platform:profile:read"}, caps)

	require.NoError(t, resolver.Enable(ctx, tenantID, "core"))
	require.NoError(t, resolver.Enable(ctx, tenantID, "crm"))

	caps, err = resolver.EffectiveCapabilities(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, []permission.Permission{
		"core:users:read", "core:users:write",
		"crm:leads:read", "crm:leads:write",
		"platform:profile:read",
	}, caps)
}

func TestRoleDefaultsMerge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	resolver, roles, tenantID := newFixture(t)

	owner := role.NewOwnerRole(tenantID)
	require.NoError(t, roles.SaveRole(ctx, owner))

	admin := role.Role{
		ID:          uuid.New(),
		TenantID:    &tenantID,
		Name:        "Admin",
		Slug:        "admin",
		Kind:        role.KindSystem,
		Permissions: []permission.Permission{"settings:write", "core:users:read"},
	}
	require.NoError(t, roles.SaveRole(ctx, admin))

	require.NoError(t, resolver.Enable(ctx, tenantID, "core"))

	got, err := roles.GetRoleBySlug(ctx, tenantID, "admin")
	require.NoError(t, err)
	// Union keeps the manual grants and adds the module default.
	assert.Equal(t, []permission.Permission{"core:users:*", "core:users:read", "settings:write"}, got.Permissions)

	// No "member" role exists for this tenant; the default entry is skipped.
	_, err = roles.GetRoleBySlug(ctx, tenantID, "member")
	assert.ErrorIs(t, err, role.ErrRoleNotFound)

	// Owner keeps exactly the universal grant.
	gotOwner, err := roles.GetRole(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []permission.Permission{"*"}, gotOwner.Permissions)
}

func TestRoleDefaultsOrderIndependent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	run := func(order []string) []permission.Permission {
		resolver, roles, tenantID := newFixture(t)
		admin := role.Role{
			ID:          uuid.New(),
			TenantID:    &tenantID,
			Name:        "Admin",
			Slug:        "admin",
			Kind:        role.KindSystem,
			Permissions: []permission.Permission{"settings:read"},
		}
		require.NoError(t, roles.SaveRole(ctx, admin))

		for _, id := range order {
			require.NoError(t, resolver.Enable(ctx, tenantID, id))
		}

		got, err := roles.GetRoleBySlug(ctx, tenantID, "admin")
		require.NoError(t, err)
		return got.Permissions
	}

	assert.Equal(t, run([]string{"core", "crm"}), run([]string{"core", "crm", "core"}))
}

func TestDisableLeavesMergedGrants(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	resolver, roles, tenantID := newFixture(t)

	admin := role.Role{
		ID:          uuid.New(),
		TenantID:    &tenantID,
		Name:        "Admin",
		Slug:        "admin",
		Kind:        role.KindSystem,
		Permissions: []permission.Permission{"settings:read"},
	}
	require.NoError(t, roles.SaveRole(ctx, admin))

	require.NoError(t, resolver.Enable(ctx, tenantID, "core"))
	require.NoError(t, resolver.Disable(ctx, tenantID, "core"))

	got, err := roles.GetRoleBySlug(ctx, tenantID, "admin")
	require.NoError(t, err)
	assert.Contains(t, got.Permissions, permission.Permission("core:users:*"))
}

func TestConcurrentEnableSingleMerge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	resolver, roles, tenantID := newFixture(t)

	admin := role.Role{
		ID:          uuid.New(),
		TenantID:    &tenantID,
		Name:        "Admin",
		Slug:        "admin",
		Kind:        role.KindSystem,
		Permissions: []permission.Permission{"settings:read"},
	}
	require.NoError(t, roles.SaveRole(ctx, admin))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = resolver.Enable(ctx, tenantID, "core")
		}()
	}
	wg.Wait()

	mods, err := resolver.EnabledModules(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, mods, 1)

	got, err := roles.GetRoleBySlug(ctx, tenantID, "admin")
	require.NoError(t, err)
	assert.Equal(t, []permission.Permission{"core:users:*", "settings:read"}, got.Permissions)
}
