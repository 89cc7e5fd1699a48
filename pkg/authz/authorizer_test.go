package authz_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhubhq/workhub/pkg/authz"
	"github.com/workhubhq/workhub/pkg/permission"
	"github.com/workhubhq/workhub/pkg/role"
	"github.com/workhubhq/workhub/pkg/session"
	"github.com/workhubhq/workhub/pkg/tenant"
)

type fixture struct {
	authorizer *authz.Authorizer
	roles      *role.MemoryStore
	userID     uuid.UUID
	tenantID   uuid.UUID
}

func newFixture(t *testing.T, grants []permission.Permission, active bool) fixture {
	t.Helper()
	ctx := context.Background()

	roles := role.NewMemoryStore()
	tenantID := uuid.New()
	userID := uuid.New()

	r := role.Role{
		ID:          uuid.New(),
		TenantID:    &tenantID,
		Name:        "Member",
		Slug:        "member",
		Kind:        role.KindSystem,
		Permissions: grants,
	}
	require.NoError(t, roles.SaveRole(ctx, r))
	require.NoError(t, roles.PutMembership(ctx, role.Membership{
		ID:       uuid.New(),
		UserID:   userID,
		TenantID: tenantID,
		RoleID:   r.ID,
		IsActive: active,
	}))

	return fixture{
		authorizer: authz.New(roles),
		roles:      roles,
		userID:     userID,
		tenantID:   tenantID,
	}
}

func TestAuthorizerCan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("granted permission passes", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, []permission.Permission{"core:users:*"}, true)

		assert.NoError(t, f.authorizer.Can(ctx, f.userID, f.tenantID, "core:users:read"))
		assert.ErrorIs(t, f.authorizer.Can(ctx, f.userID, f.tenantID, "core:roles:read"), authz.ErrPermissionDenied)
	})

	t.Run("no membership in the tenant", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, []permission.Permission{"core:*"}, true)

		err := f.authorizer.Can(ctx, f.userID, uuid.New(), "core:users:read")
		assert.ErrorIs(t, err, role.ErrMembershipNotFound)
	})

	t.Run("inactive membership grants nothing", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, []permission.Permission{"*"}, false)

		err := f.authorizer.Can(ctx, f.userID, f.tenantID, "core:users:read")
		assert.ErrorIs(t, err, authz.ErrMembershipInactive)
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)
	})

	t.Run("can all and can any", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, []permission.Permission{"core:users:*", "crm:leads:read"}, true)

		assert.NoError(t, f.authorizer.CanAll(ctx, f.userID, f.tenantID, "core:users:read", "crm:leads:read"))
		assert.ErrorIs(t,
			f.authorizer.CanAll(ctx, f.userID, f.tenantID, "core:users:read", "crm:leads:write"),
			authz.ErrPermissionDenied)

		assert.NoError(t, f.authorizer.CanAny(ctx, f.userID, f.tenantID, "billing:read", "crm:leads:read"))
		assert.ErrorIs(t,
			f.authorizer.CanAny(ctx, f.userID, f.tenantID, "billing:read", "settings:read"),
			authz.ErrPermissionDenied)
	})
}

func TestCanFromContext(t *testing.T) {
	t.Parallel()

	ctx := authz.WithGrants(context.Background(), []permission.Permission{"core:*"})

	assert.NoError(t, authz.CanFromContext(ctx, "core:users:read"))
	assert.ErrorIs(t, authz.CanFromContext(ctx, "billing:read"), authz.ErrPermissionDenied)
	assert.ErrorIs(t, authz.CanFromContext(context.Background(), "core:users:read"), authz.ErrNoGrantsInContext)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	f := newFixture(t, []permission.Permission{"core:users:read"}, true)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	bindCtx := func(req *http.Request) *http.Request {
		ctx := session.WithSession(req.Context(), &session.Session{UserID: f.userID, TenantID: f.tenantID})
		ctx = tenant.WithTenant(ctx, &tenant.Tenant{ID: f.tenantID, Slug: "acme", Active: true})
		return req.WithContext(ctx)
	}

	t.Run("granted route passes", func(t *testing.T) {
		t.Parallel()
		handler := authz.LoadGrants(f.authorizer)(authz.RequirePermission("core:users:read")(okHandler))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, bindCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing permission yields 403", func(t *testing.T) {
		t.Parallel()
		handler := authz.LoadGrants(f.authorizer)(authz.RequirePermission("core:users:delete")(okHandler))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, bindCtx(httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing session yields 401", func(t *testing.T) {
		t.Parallel()
		handler := authz.LoadGrants(f.authorizer)(okHandler)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
