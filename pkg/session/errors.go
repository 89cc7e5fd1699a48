package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidSession indicates the presented token resolves to no live
	// session.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired indicates the session lifetime has passed. Expired
	// sessions are treated as absent and never renewed.
	ErrSessionExpired = errors.New("session.expired")

	// ErrSessionNotFound indicates no session record matches the hash.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrTenantMismatch indicates the tenant asserted by the request does
	// not match the tenant bound to the session.
	ErrTenantMismatch = errors.New("session.tenant_mismatch")
)

// TenantMismatchError is a tenant-binding violation: the route asserts one
// tenant while the session is bound to another. It carries the bound tenant
// so the caller can redirect there instead of serving the asserted tenant's
// data.
type TenantMismatchError struct {
	AssertedTenantID uuid.UUID
	BoundTenantID    uuid.UUID
}

func (e *TenantMismatchError) Error() string {
	return fmt.Sprintf("session bound to tenant %s, request asserted tenant %s",
		e.BoundTenantID, e.AssertedTenantID)
}

func (e *TenantMismatchError) Unwrap() error {
	return ErrTenantMismatch
}
