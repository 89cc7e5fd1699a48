// Package pg wires PostgreSQL connectivity for the service: pooled
// connections via pgx, schema migrations via goose, and helpers for
// classifying common Postgres errors.
//
// Connect builds a pgxpool.Pool from an env-tagged Config and retries
// startup failures. Migrate applies the SQL migrations shipped under
// internal/db/migrations. The Is*Error helpers keep SQLSTATE checks out of
// the store implementations.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
package pg
