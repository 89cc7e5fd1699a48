// Package tenant carries the request-scoped tenant binding.
//
// The Binding middleware is the single place where the tenant asserted by
// a route is reconciled with the tenant recorded in the session. On a
// mismatch the caller is redirected (302) to their actual tenant or to the
// tenant selection flow - never served the asserted tenant's data and
// never shown a 403, since the session itself is still valid.
//
// Context helpers expose the bound tenant to handlers, and LoggerExtractor
// attaches the tenant id to every log record emitted under the request
// context.
package tenant
