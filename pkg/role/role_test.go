package role_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/workhubhq/workhub/pkg/permission"
	"github.com/workhubhq/workhub/pkg/role"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()

	t.Run("valid custom role", func(t *testing.T) {
		t.Parallel()
		err := role.Validate(role.Role{
			ID:          uuid.New(),
			TenantID:    &tenantID,
			Name:        "Support",
			Slug:        "support",
			Kind:        role.KindCustom,
			Permissions: []permission.Permission{"core:users:read", "core:notes:*"},
		})
		assert.NoError(t, err)
	})

	t.Run("empty permission set rejected", func(t *testing.T) {
		t.Parallel()
		err := role.Validate(role.Role{
			ID:   uuid.New(),
			Slug: "empty",
			Kind: role.KindCustom,
		})
		assert.ErrorIs(t, err, role.ErrInvalidRole)
	})

	t.Run("malformed permission rejected", func(t *testing.T) {
		t.Parallel()
		err := role.Validate(role.Role{
			ID:          uuid.New(),
			Slug:        "broken",
			Kind:        role.KindCustom,
			Permissions: []permission.Permission{"Core:Users:READ"},
		})
		assert.ErrorIs(t, err, permission.ErrInvalidPermissionFormat)
	})

	t.Run("owner role must hold only the universal grant", func(t *testing.T) {
		t.Parallel()
		owner := role.NewOwnerRole(tenantID)
		assert.NoError(t, role.Validate(owner))

		owner.Permissions = []permission.Permission{"*", "core:users:read"}
		assert.ErrorIs(t, role.Validate(owner), role.ErrOwnerRoleImmutable)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	tenantID := uuid.New()

	t.Run("save and lookup by slug", func(t *testing.T) {
		t.Parallel()
		store := role.NewMemoryStore()

		r := role.Role{
			ID:          uuid.New(),
			TenantID:    &tenantID,
			Name:        "Admin",
			Slug:        "admin",
			Kind:        role.KindSystem,
			Permissions: []permission.Permission{"core:*"},
		}
		require.NoError(t, store.SaveRole(ctx, r))

		got, err := store.GetRoleBySlug(ctx, tenantID, "admin")
		require.NoError(t, err)
		assert.Equal(t, r.ID, got.ID)
		assert.Equal(t, r.Permissions, got.Permissions)

		_, err = store.GetRoleBySlug(ctx, uuid.New(), "admin")
		assert.ErrorIs(t, err, role.ErrRoleNotFound)
	})

	t.Run("owner role cannot be edited or deleted", func(t *testing.T) {
		t.Parallel()
		store := role.NewMemoryStore()

		owner := role.NewOwnerRole(tenantID)
		require.NoError(t, store.SaveRole(ctx, owner))

		owner.Name = "Renamed"
		assert.ErrorIs(t, store.SaveRole(ctx, owner), role.ErrOwnerRoleImmutable)
		assert.ErrorIs(t, store.DeleteRole(ctx, owner.ID), role.ErrOwnerRoleImmutable)
	})

	t.Run("save rejects malformed grants before persisting", func(t *testing.T) {
		t.Parallel()
		store := role.NewMemoryStore()

		err := store.SaveRole(ctx, role.Role{
			ID:          uuid.New(),
			TenantID:    &tenantID,
			Slug:        "bad",
			Kind:        role.KindCustom,
			Permissions: []permission.Permission{"a:b:c:d"},
		})
		assert.ErrorIs(t, err, permission.ErrInvalidPermissionFormat)

		_, lookupErr := store.GetRoleBySlug(ctx, tenantID, "bad")
		assert.ErrorIs(t, lookupErr, role.ErrRoleNotFound)
	})

	t.Run("stored role is isolated from caller mutation", func(t *testing.T) {
		t.Parallel()
		store := role.NewMemoryStore()

		r := role.Role{
			ID:          uuid.New(),
			TenantID:    &tenantID,
			Slug:        "member",
			Kind:        role.KindSystem,
			Permissions: []permission.Permission{"core:dashboard:read"},
		}
		require.NoError(t, store.SaveRole(ctx, r))

		r.Permissions[0] = "core:*"

		got, err := store.GetRole(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, []permission.Permission{"core:dashboard:read"}, got.Permissions)
	})
}

func TestMembershipVerifyPIN(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("4821"), bcrypt.MinCost)
	require.NoError(t, err)

	m := role.Membership{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		RoleID:   uuid.New(),
		IsActive: true,
		PINHash:  string(hash),
	}

	assert.NoError(t, m.VerifyPIN("4821"))
	assert.ErrorIs(t, m.VerifyPIN("0000"), role.ErrInvalidPIN)

	m.PINHash = ""
	assert.ErrorIs(t, m.VerifyPIN("4821"), role.ErrInvalidPIN)
}
