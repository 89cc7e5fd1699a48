package authz

import (
	"context"

	"github.com/workhubhq/workhub/pkg/permission"
)

type grantsCtxKey struct{}

// WithGrants stores the caller's resolved permission set in the context.
func WithGrants(ctx context.Context, granted []permission.Permission) context.Context {
	return context.WithValue(ctx, grantsCtxKey{}, granted)
}

// GrantsFromContext retrieves the caller's permission set from the context.
func GrantsFromContext(ctx context.Context) ([]permission.Permission, bool) {
	granted, ok := ctx.Value(grantsCtxKey{}).([]permission.Permission)
	return granted, ok
}

// CanFromContext checks the required permission against the grants bound
// to the context.
func CanFromContext(ctx context.Context, required permission.Permission) error {
	granted, ok := GrantsFromContext(ctx)
	if !ok {
		return ErrNoGrantsInContext
	}
	if !permission.Matches(granted, required) {
		return ErrPermissionDenied
	}
	return nil
}
