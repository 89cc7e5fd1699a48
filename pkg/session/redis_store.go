package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisSessionKeyPrefix = "session:"
	redisUserIndexPrefix  = "user_sessions:"
)

// RedisStore implements Store on Redis. Session records expire through key
// TTLs matching the session lifetime, so DeleteExpired has nothing to do. A
// per-user set indexes token hashes for LogoutAll.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a session store over the Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// FindByTokenHash retrieves a session by its token hash.
func (r *RedisStore) FindByTokenHash(ctx context.Context, hash string) (*Session, error) {
	data, err := r.client.Get(ctx, redisSessionKeyPrefix+hash).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session: redis get: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: decode record: %w", err)
	}

	// Key TTL and record expiry can drift by a clock tick; the record wins.
	if s.IsExpired() {
		return nil, ErrSessionExpired
	}

	return &s, nil
}

// Create persists a new session record with a TTL matching its lifetime.
func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	if s == nil || s.TokenHash == "" {
		return ErrInvalidSession
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode record: %w", err)
	}

	ttl := s.TTL()
	if ttl <= 0 {
		return ErrSessionExpired
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, redisSessionKeyPrefix+s.TokenHash, data, ttl)
	pipe.SAdd(ctx, redisUserIndexPrefix+s.UserID.String(), s.TokenHash)
	pipe.ExpireGT(ctx, redisUserIndexPrefix+s.UserID.String(), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: redis create: %w", err)
	}
	return nil
}

// Delete removes a session by token hash.
func (r *RedisStore) Delete(ctx context.Context, hash string) error {
	if err := r.client.Del(ctx, redisSessionKeyPrefix+hash).Err(); err != nil {
		return fmt.Errorf("session: redis delete: %w", err)
	}
	return nil
}

// DeleteByUserID removes every session of the user via the per-user index.
func (r *RedisStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	indexKey := redisUserIndexPrefix + userID.String()

	hashes, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("session: redis index read: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, redisSessionKeyPrefix+hash)
	}
	keys = append(keys, indexKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("session: redis delete all: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op; Redis evicts expired keys through TTLs.
func (r *RedisStore) DeleteExpired(ctx context.Context) error {
	return nil
}
