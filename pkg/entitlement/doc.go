// Package entitlement resolves which modules a tenant has enabled and
// enforces the dependency semantics of enabling and disabling them.
//
// Enabling a module requires every declared dependency to be enabled
// already; the resolver never auto-enables transitively, callers work
// bottom-up. Disabling fails while another enabled module still depends on
// the target. Both operations are idempotent and run inside a per-tenant
// mutual-exclusion scope supplied by the Store, so concurrent calls for the
// same tenant cannot both pass the dependency check.
//
// On enable, the module's role defaults are merged into the tenant's roles
// with set union - existing grants are never overwritten or removed, and
// applying several modules' defaults is order-independent. On disable the
// previously merged grants are deliberately left in place: revoking a
// permission is an explicit role edit, never a silent side effect.
//
// EffectiveCapabilities answers the tenant-level question "is this feature
// available at all"; per-user authorization goes through the membership's
// role and the permission matcher instead.
//
// Two stores ship with the package: MemoryStore with a keyed mutex, and
// PostgresStore which serializes through a transaction-scoped advisory
// lock keyed by tenant id.
package entitlement
