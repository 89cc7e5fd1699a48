// Package role models tenant roles and memberships and their persistence
// boundary.
//
// A role is a named set of permissions scoped to a tenant. The owner role
// is a tagged variant (KindOwner) that always holds the universal grant and
// can be neither edited nor deleted; store implementations enforce both
// rules. Every permission string is validated against the grammar at save
// time, so the matching hot path never sees malformed input.
//
// A membership links exactly one user to exactly one tenant with exactly
// one role. The optional PIN hash supports quick re-verification; hashing
// itself is delegated to the credential store.
package role
