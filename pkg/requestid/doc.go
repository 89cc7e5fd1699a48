// Package requestid assigns every request a stable identifier for log
// correlation: middleware that honors or replaces the X-Request-ID header,
// context helpers, and a logger extractor.
package requestid
