// Package authz gates per-user operations on the membership's role.
//
// Where entitlement answers "does the tenant have this capability at all",
// authz answers "may this member use it": the user and tenant resolve to a
// membership, the membership to a role, and the role's grants run through
// the permission matcher. HTTP consumers mount LoadGrants behind the
// tenant binding middleware and guard routes with RequirePermission.
package authz
