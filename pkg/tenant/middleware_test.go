package tenant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhubhq/workhub/pkg/session"
	"github.com/workhubhq/workhub/pkg/tenant"
)

type staticDirectory struct {
	bySlug map[string]*tenant.Tenant
}

func (d *staticDirectory) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	if t, ok := d.bySlug[slug]; ok {
		return t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (d *staticDirectory) GetTenantSlugByID(ctx context.Context, id uuid.UUID) (string, error) {
	for _, t := range d.bySlug {
		if t.ID == id {
			return t.Slug, nil
		}
	}
	return "", tenant.ErrTenantNotFound
}

func newRouter(t *testing.T, mw func(http.Handler) http.Handler) *chi.Mux {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/{tenant}", func(r chi.Router) {
		r.Use(mw)
		r.Get("/dashboard", func(w http.ResponseWriter, req *http.Request) {
			bound := tenant.MustFromContext(req.Context())
			w.Write([]byte("tenant:" + bound.Slug))
		})
	})
	return r
}

func TestBindingMiddleware(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	acme := &tenant.Tenant{ID: uuid.New(), Slug: "acme", Name: "Acme", Active: true}
	globex := &tenant.Tenant{ID: uuid.New(), Slug: "globex", Name: "Globex", Active: true}
	dormant := &tenant.Tenant{ID: uuid.New(), Slug: "dormant", Name: "Dormant", Active: false}

	directory := &staticDirectory{bySlug: map[string]*tenant.Tenant{
		"acme":    acme,
		"globex":  globex,
		"dormant": dormant,
	}}

	store := session.NewMemoryStore(0)
	mgr := session.NewManager(store, session.WithTTL(time.Hour))
	binder := session.NewBinder(store)

	userID := uuid.New()
	token, _, err := mgr.Login(ctx, userID, acme.ID, session.Metadata{})
	require.NoError(t, err)

	router := newRouter(t, tenant.Binding(binder, directory, directory))

	get := func(t *testing.T, path, token string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: "wh_session", Value: token})
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("bound tenant is served", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/acme/dashboard", token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tenant:acme", rec.Body.String())
	})

	t.Run("no session redirects to login", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/acme/dashboard", "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("binding violation redirects to the bound tenant", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/globex/dashboard", token)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/acme", rec.Header().Get("Location"))
		assert.NotContains(t, rec.Body.String(), "globex")
	})

	t.Run("unknown tenant slug redirects to selection", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/nowhere/dashboard", token)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/tenants", rec.Header().Get("Location"))
	})

	t.Run("inactive tenant redirects to selection", func(t *testing.T) {
		t.Parallel()
		rec := get(t, "/dormant/dashboard", token)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/tenants", rec.Header().Get("Location"))
	})

	t.Run("bearer token is accepted", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/acme/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBindingMiddlewareMismatchWithoutSlug(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	acme := &tenant.Tenant{ID: uuid.New(), Slug: "acme", Name: "Acme", Active: true}
	directory := &staticDirectory{bySlug: map[string]*tenant.Tenant{"acme": acme}}

	store := session.NewMemoryStore(0)
	mgr := session.NewManager(store, session.WithTTL(time.Hour))

	// Session bound to a tenant the directory cannot resolve anymore.
	token, _, err := mgr.Login(ctx, uuid.New(), uuid.New(), session.Metadata{})
	require.NoError(t, err)

	router := newRouter(t, tenant.Binding(session.NewBinder(store), directory, directory))

	req := httptest.NewRequest(http.MethodGet, "/acme/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "wh_session", Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/tenants", rec.Header().Get("Location"))
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	handler := tenant.RequireTenant(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing tenant is rejected", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("bound tenant passes", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(tenant.WithTenant(req.Context(), &tenant.Tenant{ID: uuid.New(), Slug: "acme"}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		want := &tenant.Tenant{ID: uuid.New(), Slug: "acme"}
		ctx := tenant.WithTenant(context.Background(), want)

		got, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, want, got)

		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, want.ID, id)
	})

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()
		_, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)

		assert.Panics(t, func() {
			tenant.MustFromContext(context.Background())
		})
	})
}
