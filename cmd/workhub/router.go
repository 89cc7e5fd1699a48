package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workhubhq/workhub/pkg/authz"
	"github.com/workhubhq/workhub/pkg/catalog"
	"github.com/workhubhq/workhub/pkg/entitlement"
	"github.com/workhubhq/workhub/pkg/httpserver"
	"github.com/workhubhq/workhub/pkg/logger"
	"github.com/workhubhq/workhub/pkg/navigation"
	"github.com/workhubhq/workhub/pkg/requestid"
	"github.com/workhubhq/workhub/pkg/role"
	"github.com/workhubhq/workhub/pkg/session"
	"github.com/workhubhq/workhub/pkg/tenant"
)

type routerDeps struct {
	log      *slog.Logger
	binder   *session.Binder
	manager  *session.Manager
	tenants  *tenant.PostgresProvider
	roles    role.Store
	resolver *entitlement.Resolver
	ready    []func(context.Context) error
}

func newRouter(deps routerDeps) http.Handler {
	authorizer := authz.New(deps.roles)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/healthz", httpserver.HealthCheckHandler(context.Background(), deps.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(context.Background(), deps.log, deps.ready...))

	r.Route("/{tenant}", func(r chi.Router) {
		r.Use(tenant.Binding(deps.binder, deps.tenants, deps.tenants))
		r.Use(authz.LoadGrants(authorizer))

		r.Get("/navigation", handleNavigation(deps.resolver))
		r.Get("/capabilities", handleCapabilities(deps.resolver))
		r.Get("/modules", handleListModules(deps.resolver))

		r.Group(func(r chi.Router) {
			r.Use(authz.RequirePermission("core:modules:manage"))
			r.Post("/modules/{module}/enable", handleEnableModule(deps.resolver))
			r.Post("/modules/{module}/disable", handleDisableModule(deps.resolver))
		})

		r.Post("/logout", handleLogout(deps.manager))
	})

	return r
}

// handleNavigation returns the caller's pruned navigation tree: the nav
// items of every enabled module, filtered down to entries the caller's
// grants can reach.
func handleNavigation(resolver *entitlement.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		t := tenant.MustFromContext(ctx)
		granted, ok := authz.GrantsFromContext(ctx)
		if !ok {
			writeError(w, http.StatusForbidden, authz.ErrNoGrantsInContext)
			return
		}

		modules, err := resolver.EnabledModules(ctx, t.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		var items []catalog.NavItem
		for _, mod := range modules {
			items = append(items, mod.Navigation...)
		}

		writeJSON(w, http.StatusOK, navigation.Compose(items, granted))
	}
}

func handleCapabilities(resolver *entitlement.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		t := tenant.MustFromContext(ctx)

		caps, err := resolver.EffectiveCapabilities(ctx, t.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, caps)
	}
}

func handleListModules(resolver *entitlement.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		t := tenant.MustFromContext(ctx)

		modules, err := resolver.EnabledModules(ctx, t.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, modules)
	}
}

func handleEnableModule(resolver *entitlement.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		t := tenant.MustFromContext(ctx)
		moduleID := chi.URLParam(r, "module")

		if err := resolver.Enable(ctx, t.ID, moduleID); err != nil {
			writeEntitlementError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDisableModule(resolver *entitlement.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		t := tenant.MustFromContext(ctx)
		moduleID := chi.URLParam(r, "module")

		if err := resolver.Disable(ctx, t.ID, moduleID); err != nil {
			writeEntitlementError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleLogout(manager *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(tenant.DefaultCookieName); err == nil {
			if err := manager.Logout(r.Context(), cookie.Value); err != nil {
				slog.ErrorContext(r.Context(), "logout failed", logger.Error(err))
			}
			http.SetCookie(w, &http.Cookie{
				Name:     tenant.DefaultCookieName,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
			})
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// writeEntitlementError maps resolver failures to status codes: unknown
// module → 404, dependency conflicts → 409, anything else → 500.
func writeEntitlementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrModuleNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, entitlement.ErrMissingDependency),
		errors.Is(err, entitlement.ErrDependentModuleActive):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	type errResponse struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResponse{Error: err.Error()})
}
