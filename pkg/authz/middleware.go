package authz

import (
	"errors"
	"net/http"

	"github.com/workhubhq/workhub/pkg/permission"
	"github.com/workhubhq/workhub/pkg/role"
	"github.com/workhubhq/workhub/pkg/session"
	"github.com/workhubhq/workhub/pkg/tenant"
)

// LoadGrants resolves the caller's permission set from the session and
// tenant already bound to the request context and stores it for
// RequirePermission checks further down the chain. Mount it behind the
// tenant binding middleware.
func LoadGrants(a *Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			s, ok := session.FromContext(ctx)
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			t, ok := tenant.FromContext(ctx)
			if !ok {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			granted, err := a.Grants(ctx, s.UserID, t.ID)
			if err != nil {
				if errors.Is(err, role.ErrMembershipNotFound) || errors.Is(err, ErrPermissionDenied) {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
					return
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithGrants(ctx, granted)))
		})
	}
}

// RequirePermission rejects the request with 403 unless the grants bound
// to the context satisfy the required permission.
func RequirePermission(required permission.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := CanFromContext(r.Context(), required); err != nil {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
