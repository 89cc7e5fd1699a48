// Package redis provides connection bootstrap for the Redis-backed session
// store: an env-tagged Config, Connect with startup retries, and a
// Healthcheck closure for readiness probes.
package redis
