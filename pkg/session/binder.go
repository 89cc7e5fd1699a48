package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Binder resolves a presented token to its bound session and enforces the
// tenant-binding invariant: the tenant asserted by a request must match the
// tenant recorded in the session. The tenant id appears in both the URL and
// the session; trusting the URL would let a member of one tenant view
// another tenant's routes by editing the address bar, so the session is the
// only authority.
type Binder struct {
	store Store
	now   func() time.Time
}

// BinderOption configures the binder.
type BinderOption func(*Binder)

// WithBinderClock overrides the time source, used in tests.
func WithBinderClock(now func() time.Time) BinderOption {
	return func(b *Binder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBinder creates a binder over the session store.
func NewBinder(store Store, opts ...BinderOption) *Binder {
	b := &Binder{store: store, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Resolve validates the token and returns the bound session.
//
// An unknown token yields ErrInvalidSession; an expired one yields
// ErrSessionExpired - both mean "re-authenticate", and expired sessions are
// never renewed here. When assertedTenantID is non-zero (the request came
// through a tenant-scoped route) and differs from the session's tenant,
// Resolve returns a *TenantMismatchError carrying the bound tenant. That is
// a binding violation, not a conventional auth failure: the caller must
// redirect to the bound tenant, never serve data under the asserted one.
//
// Resolve is read-only; it mutates nothing.
func (b *Binder) Resolve(ctx context.Context, token string, assertedTenantID uuid.UUID) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	s, err := b.store.FindByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired) {
			if errors.Is(err, ErrSessionExpired) {
				return nil, ErrSessionExpired
			}
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if b.now().After(s.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	if assertedTenantID != uuid.Nil && assertedTenantID != s.TenantID {
		return nil, &TenantMismatchError{
			AssertedTenantID: assertedTenantID,
			BoundTenantID:    s.TenantID,
		}
	}

	return s, nil
}
