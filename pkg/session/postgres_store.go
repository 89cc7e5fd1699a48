package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on PostgreSQL via pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a session store backed by the connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// FindByTokenHash retrieves a session by its token hash. Expired records
// still present in the table resolve to ErrSessionExpired.
func (s *PostgresStore) FindByTokenHash(ctx context.Context, hash string) (*Session, error) {
	var rec Session
	var ip, ua *string
	err := s.pool.QueryRow(ctx, `
		SELECT token_hash, user_id, tenant_id, expires_at, created_at, ip_address, user_agent
		FROM sessions WHERE token_hash = $1`, hash).
		Scan(&rec.TokenHash, &rec.UserID, &rec.TenantID, &rec.ExpiresAt, &rec.CreatedAt, &ip, &ua)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if ip != nil {
		rec.IPAddress = *ip
	}
	if ua != nil {
		rec.UserAgent = *ua
	}

	if rec.IsExpired() {
		return nil, ErrSessionExpired
	}

	return &rec, nil
}

// Create persists a new session record.
func (s *PostgresStore) Create(ctx context.Context, rec *Session) error {
	if rec == nil || rec.TokenHash == "" {
		return ErrInvalidSession
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (token_hash, user_id, tenant_id, expires_at, created_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))`,
		rec.TokenHash, rec.UserID, rec.TenantID, rec.ExpiresAt, rec.CreatedAt, rec.IPAddress, rec.UserAgent)
	return err
}

// Delete removes a session by token hash.
func (s *PostgresStore) Delete(ctx context.Context, hash string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, hash)
	return err
}

// DeleteByUserID removes every session of the user.
func (s *PostgresStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

// DeleteExpired removes all expired session records.
func (s *PostgresStore) DeleteExpired(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	return err
}
