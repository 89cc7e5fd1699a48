package entitlement

import (
	"context"
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a pgx-backed Store. WithinTenantLock wraps fn in a
// transaction holding a per-tenant advisory lock, so the check-then-act
// sequence of enable/disable is serialized across processes, not just
// within one.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

type txCtxKey struct{}

// conn returns the transaction bound to ctx by WithinTenantLock, if any.
func (s *PostgresStore) conn(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// ListEnabled returns all enablement records for the tenant.
func (s *PostgresStore) ListEnabled(ctx context.Context, tenantID uuid.UUID) ([]Enablement, error) {
	const q = `SELECT tenant_id, module_id, enabled_at, config
		FROM tenant_modules WHERE tenant_id = $1 ORDER BY module_id`

	var rows pgx.Rows
	var err error
	if tx := s.conn(ctx); tx != nil {
		rows, err = tx.Query(ctx, q, tenantID)
	} else {
		rows, err = s.pool.Query(ctx, q, tenantID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Enablement
	for rows.Next() {
		var e Enablement
		if err := rows.Scan(&e.TenantID, &e.ModuleID, &e.EnabledAt, &e.Config); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create persists a new enablement record; existing pairs are left intact.
func (s *PostgresStore) Create(ctx context.Context, e Enablement) error {
	const q = `INSERT INTO tenant_modules (tenant_id, module_id, enabled_at, config)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, module_id) DO NOTHING`

	if tx := s.conn(ctx); tx != nil {
		_, err := tx.Exec(ctx, q, e.TenantID, e.ModuleID, e.EnabledAt, e.Config)
		return err
	}
	_, err := s.pool.Exec(ctx, q, e.TenantID, e.ModuleID, e.EnabledAt, e.Config)
	return err
}

// Delete removes the enablement record for the pair.
func (s *PostgresStore) Delete(ctx context.Context, tenantID uuid.UUID, moduleID string) error {
	const q = `DELETE FROM tenant_modules WHERE tenant_id = $1 AND module_id = $2`

	if tx := s.conn(ctx); tx != nil {
		_, err := tx.Exec(ctx, q, tenantID, moduleID)
		return err
	}
	_, err := s.pool.Exec(ctx, q, tenantID, moduleID)
	return err
}

// WithinTenantLock opens a transaction, takes a transaction-scoped advisory
// lock keyed by the tenant id, and runs fn with the transaction bound to
// the context. The lock releases automatically on commit or rollback.
func (s *PostgresStore) WithinTenantLock(ctx context.Context, tenantID uuid.UUID, fn func(ctx context.Context) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, tenantLockKey(tenantID)); err != nil {
		return err
	}

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// tenantLockKey folds the tenant uuid into the 64-bit advisory lock keyspace.
func tenantLockKey(tenantID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(tenantID[:])
	return int64(h.Sum64())
}
