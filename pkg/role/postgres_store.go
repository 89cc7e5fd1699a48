package role

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workhubhq/workhub/pkg/permission"
)

// PostgresStore is a pgx-backed Store implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// GetRole retrieves a role by id.
func (s *PostgresStore) GetRole(ctx context.Context, id uuid.UUID) (Role, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, slug, kind, permissions FROM roles WHERE id = $1`, id)
	return scanRole(row)
}

// GetRoleBySlug retrieves a tenant's role by slug.
func (s *PostgresStore) GetRoleBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (Role, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, slug, kind, permissions FROM roles WHERE tenant_id = $1 AND slug = $2`,
		tenantID, slug)
	return scanRole(row)
}

// ListTenantRoles returns every role owned by the tenant, ordered by slug.
func (s *PostgresStore) ListTenantRoles(ctx context.Context, tenantID uuid.UUID) ([]Role, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, tenant_id, name, slug, kind, permissions FROM roles WHERE tenant_id = $1 ORDER BY slug`,
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// SaveRole validates and upserts a role. Grant edits to an existing owner
// role are rejected at the database level by refusing the update.
func (s *PostgresStore) SaveRole(ctx context.Context, r Role) error {
	if err := Validate(r); err != nil {
		return err
	}

	perms := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		perms[i] = string(p)
	}

	tag, err := s.pool.Exec(ctx, `
		INSERT INTO roles (id, tenant_id, name, slug, kind, permissions)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, slug = EXCLUDED.slug, permissions = EXCLUDED.permissions
		WHERE roles.kind <> 'owner'`,
		r.ID, r.TenantID, r.Name, r.Slug, string(r.Kind), perms)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOwnerRoleImmutable
	}
	return nil
}

// DeleteRole removes a role. The owner role cannot be deleted.
func (s *PostgresStore) DeleteRole(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1 AND kind <> 'owner'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		row := s.pool.QueryRow(ctx, `SELECT kind FROM roles WHERE id = $1`, id)
		var kind string
		if err := row.Scan(&kind); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrRoleNotFound
			}
			return err
		}
		return ErrOwnerRoleImmutable
	}
	return nil
}

// GetMembership retrieves the membership of a user in a tenant.
func (s *PostgresStore) GetMembership(ctx context.Context, userID, tenantID uuid.UUID) (Membership, error) {
	var m Membership
	var pinHash *string
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, tenant_id, role_id, is_active, pin_hash
		FROM memberships WHERE user_id = $1 AND tenant_id = $2`,
		userID, tenantID).
		Scan(&m.ID, &m.UserID, &m.TenantID, &m.RoleID, &m.IsActive, &pinHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Membership{}, ErrMembershipNotFound
		}
		return Membership{}, err
	}
	if pinHash != nil {
		m.PINHash = *pinHash
	}
	return m, nil
}

func scanRole(row pgx.Row) (Role, error) {
	var r Role
	var kind string
	var perms []string
	if err := row.Scan(&r.ID, &r.TenantID, &r.Name, &r.Slug, &kind, &perms); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, err
	}
	r.Kind = Kind(kind)
	r.Permissions = make([]permission.Permission, len(perms))
	for i, p := range perms {
		r.Permissions[i] = permission.Permission(p)
	}
	return r, nil
}
