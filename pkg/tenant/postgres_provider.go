package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProvider is a pgx-backed Provider and SlugResolver.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider creates a tenant provider backed by the given
// connection pool.
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

// GetBySlug retrieves a tenant by its URL slug.
func (p *PostgresProvider) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	var t Tenant
	err := p.pool.QueryRow(ctx,
		`SELECT id, slug, name, is_active FROM tenants WHERE slug = $1`, slug).
		Scan(&t.ID, &t.Slug, &t.Name, &t.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetTenantSlugByID returns the slug for the tenant id.
func (p *PostgresProvider) GetTenantSlugByID(ctx context.Context, id uuid.UUID) (string, error) {
	var slug string
	err := p.pool.QueryRow(ctx,
		`SELECT slug FROM tenants WHERE id = $1`, id).Scan(&slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrTenantNotFound
		}
		return "", err
	}
	return slug, nil
}
