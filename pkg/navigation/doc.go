// Package navigation builds the menu a caller may actually see.
//
// It walks the navigation trees contributed by enabled modules and prunes
// every branch the caller's permission set cannot satisfy, using the same
// matcher that gates data access, so the menu never advertises a route the
// caller would be denied. Compose is pure and safe for concurrent use.
package navigation
