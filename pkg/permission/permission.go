package permission

import (
	"slices"
	"sort"
	"strings"
)

const (
	// Wildcard is the universal grant that satisfies any required permission.
	Wildcard = "*"

	// Separator splits a permission into its module, resource and action segments.
	Separator = ":"

	// MaxSegments is the maximum number of segments a permission may carry.
	MaxSegments = 3
)

// Permission is a capability string of one to three colon-separated lowercase
// segments: "module", "module:resource" or "module:resource:action".
// The literal "*" grants everything; "module:*" and "module:resource:*" grant
// whole families. Permissions are immutable values.
type Permission string

// String returns the raw permission string.
func (p Permission) String() string {
	return string(p)
}

// IsWildcard reports whether the permission is the universal grant.
func (p Permission) IsWildcard() bool {
	return p == Wildcard
}

// Matches reports whether the granted set satisfies the required permission.
//
// Wildcards expand on the granted side only: a required permission that
// happens to contain "*" is compared verbatim, which allows callers to ask
// whether a role holds a specific wildcard grant.
func Matches(granted []Permission, required Permission) bool {
	if len(granted) == 0 {
		return false
	}

	if slices.Contains(granted, Wildcard) {
		return true
	}
	if slices.Contains(granted, required) {
		return true
	}

	parts := strings.Split(string(required), Separator)
	if len(parts) >= 2 && slices.Contains(granted, Permission(parts[0]+Separator+Wildcard)) {
		return true
	}
	if len(parts) == 3 && slices.Contains(granted, Permission(parts[0]+Separator+parts[1]+Separator+Wildcard)) {
		return true
	}

	return false
}

// MatchesAll reports whether the granted set satisfies every required permission.
// An empty required set is trivially satisfied.
func MatchesAll(granted []Permission, required ...Permission) bool {
	for _, req := range required {
		if !Matches(granted, req) {
			return false
		}
	}
	return true
}

// MatchesAny reports whether the granted set satisfies at least one of the
// required permissions. An empty required set is trivially satisfied.
func MatchesAny(granted []Permission, required ...Permission) bool {
	if len(required) == 0 {
		return true
	}
	for _, req := range required {
		if Matches(granted, req) {
			return true
		}
	}
	return false
}

// Normalize removes duplicates and sorts the set for deterministic storage
// and comparison. Returns nil for empty input.
func Normalize(perms []Permission) []Permission {
	if len(perms) == 0 {
		return nil
	}

	unique := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		unique[p] = struct{}{}
	}

	normalized := make([]Permission, 0, len(unique))
	for p := range unique {
		normalized = append(normalized, p)
	}
	sort.Slice(normalized, func(i, j int) bool { return normalized[i] < normalized[j] })

	return normalized
}

// Equal reports whether two permission sets contain the same grants,
// regardless of order or duplication.
func Equal(a, b []Permission) bool {
	return slices.Equal(Normalize(a), Normalize(b))
}
