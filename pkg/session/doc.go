// Package session implements session storage and the tenant binding check
// that forms the platform's security boundary.
//
// A session is created at login with a fixed lifetime and binds a user to
// exactly one tenant. The client holds an opaque random token; the store
// keeps only its SHA-256 hash, so a leaked store yields no usable tokens.
//
// # Binding
//
// Binder.Resolve hashes the presented token, looks up the live record and
// compares the tenant asserted by the route against the tenant recorded in
// the session:
//
//	s, err := binder.Resolve(ctx, token, assertedTenantID)
//	switch {
//	case errors.Is(err, session.ErrInvalidSession),
//		errors.Is(err, session.ErrSessionExpired):
//		// re-authenticate
//	case errors.Is(err, session.ErrTenantMismatch):
//		// redirect to the bound tenant - never serve the asserted one
//	}
//
// A mismatch is a tenant-binding violation rather than an ordinary auth
// failure: the session stays valid, the caller is simply on the wrong
// tenant's URL. *TenantMismatchError carries the bound tenant id so the
// route layer can issue the redirect.
//
// # Stores
//
// MemoryStore (janitor-based cleanup), RedisStore (TTL-based expiry) and
// PostgresStore implement the Store interface. Resolution is read-only;
// Manager.Login and Manager.Logout are the only mutations.
package session
