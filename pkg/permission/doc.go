// Package permission implements the hierarchical wildcard permission grammar
// that gates every authorization decision on the platform.
//
// A permission is a string of one to three colon-separated lowercase segments:
//
//	core
//	core:users
//	core:users:read
//
// The literal "*" is the universal grant. Scoped wildcards cover whole
// families: "core:*" satisfies any permission under the core module, and
// "core:users:*" satisfies any action on core users.
//
// # Matching
//
//	granted := []permission.Permission{"core:*", "billing:invoices:read"}
//
//	permission.Matches(granted, "core:users:read")     // true
//	permission.Matches(granted, "billing:plans:read")  // false
//
// Wildcards expand on the granted side only. A wildcard supplied as the
// required permission is treated as a literal string, so callers can probe
// whether a role holds a specific wildcard grant.
//
// # Validation
//
// Validate and ValidateAll enforce the grammar at the data-entry boundary
// (role save, catalog registration). The matcher itself is pure and total:
// it assumes pre-validated input and never returns an error.
//
// All functions are safe for concurrent use; permissions are immutable values.
package permission
