package tenant

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/workhubhq/workhub/pkg/session"
)

// DefaultCookieName is the cookie carrying the session token unless
// overridden with WithCookieName.
const DefaultCookieName = "wh_session"

type config struct {
	cookieName    string
	routeParam    string
	loginURL      string
	selectorURL   string
	tenantHome    func(slug string) string
	requireActive bool
	errorHandler  func(w http.ResponseWriter, r *http.Request, err error)
}

// Option configures the binding middleware.
type Option func(*config)

// WithCookieName sets the cookie carrying the session token.
func WithCookieName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.cookieName = name
		}
	}
}

// WithRouteParam sets the chi route parameter holding the asserted tenant
// slug.
func WithRouteParam(name string) Option {
	return func(c *config) {
		if name != "" {
			c.routeParam = name
		}
	}
}

// WithLoginURL sets the redirect target for missing or expired sessions.
func WithLoginURL(url string) Option {
	return func(c *config) {
		if url != "" {
			c.loginURL = url
		}
	}
}

// WithSelectorURL sets the redirect target when no tenant can be resolved
// for the caller.
func WithSelectorURL(url string) Option {
	return func(c *config) {
		if url != "" {
			c.selectorURL = url
		}
	}
}

// WithTenantHome sets how a tenant slug maps to the tenant's home URL,
// used to redirect a mismatched session to its actual tenant.
func WithTenantHome(fn func(slug string) string) Option {
	return func(c *config) {
		if fn != nil {
			c.tenantHome = fn
		}
	}
}

// WithErrorHandler sets the handler for unexpected resolution failures.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(c *config) {
		if fn != nil {
			c.errorHandler = fn
		}
	}
}

func defaultConfig() *config {
	return &config{
		cookieName:    DefaultCookieName,
		routeParam:    "tenant",
		loginURL:      "/login",
		selectorURL:   "/tenants",
		tenantHome:    func(slug string) string { return "/" + slug },
		requireActive: true,
		errorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
}

// Binding returns middleware enforcing the tenant-binding invariant on
// tenant-scoped routes.
//
// It extracts the session token and the asserted tenant slug from the
// request and resolves both through the session binder. A missing or
// expired session redirects to login. A binding violation - a valid
// session presented on another tenant's route - redirects to the caller's
// actual tenant (or to tenant selection when it cannot be resolved) with
// status 302, never a 403 and never the asserted tenant's data.
func Binding(binder *session.Binder, provider Provider, slugs SlugResolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			slug := chi.URLParam(r, cfg.routeParam)
			if slug == "" {
				http.Redirect(w, r, cfg.selectorURL, http.StatusFound)
				return
			}

			asserted, err := provider.GetBySlug(ctx, slug)
			if err != nil {
				if errors.Is(err, ErrTenantNotFound) {
					http.Redirect(w, r, cfg.selectorURL, http.StatusFound)
					return
				}
				cfg.errorHandler(w, r, err)
				return
			}
			if cfg.requireActive && !asserted.Active {
				http.Redirect(w, r, cfg.selectorURL, http.StatusFound)
				return
			}

			s, err := binder.Resolve(ctx, tokenFromRequest(r, cfg.cookieName), asserted.ID)
			if err != nil {
				var mismatch *session.TenantMismatchError
				switch {
				case errors.As(err, &mismatch):
					boundSlug, slugErr := slugs.GetTenantSlugByID(ctx, mismatch.BoundTenantID)
					if slugErr != nil {
						http.Redirect(w, r, cfg.selectorURL, http.StatusFound)
						return
					}
					http.Redirect(w, r, cfg.tenantHome(boundSlug), http.StatusFound)
				case errors.Is(err, session.ErrInvalidSession), errors.Is(err, session.ErrSessionExpired):
					http.Redirect(w, r, cfg.loginURL, http.StatusFound)
				default:
					cfg.errorHandler(w, r, err)
				}
				return
			}

			ctx = WithTenant(ctx, asserted)
			ctx = session.WithSession(ctx, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant ensures a tenant is bound to the context, for routes
// mounted behind Binding.
func RequireTenant(errorHandler func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if t, ok := FromContext(r.Context()); !ok || t == nil {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return token
		}
	}
	return ""
}
