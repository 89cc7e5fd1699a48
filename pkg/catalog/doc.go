// Package catalog holds the immutable module registry.
//
// A module contributes capabilities (permissions it introduces), declared
// dependencies on other modules, default permission grants per role slug,
// and navigation fragments. Definitions come from a Source - a YAML file
// shipped with the deployment or a static slice - and are validated once
// when the Registry is built: duplicate ids, unknown dependencies,
// dependency cycles and malformed permission strings all fail construction.
//
// The registry is read-only after New returns and safe for concurrent use.
// Entitlement resolution relies on the catalog being acyclic and does not
// re-check the graph on the request path.
package catalog
