package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhubhq/workhub/pkg/session"
)

func TestBinderResolve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	userID := uuid.New()
	tenantX := uuid.New()
	tenantY := uuid.New()

	login := func(t *testing.T, store session.Store) string {
		t.Helper()
		mgr := session.NewManager(store, session.WithTTL(time.Hour))
		token, _, err := mgr.Login(ctx, userID, tenantX, session.Metadata{})
		require.NoError(t, err)
		return token
	}

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		binder := session.NewBinder(session.NewMemoryStore(0))

		_, err := binder.Resolve(ctx, "", uuid.Nil)
		assert.ErrorIs(t, err, session.ErrInvalidSession)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		binder := session.NewBinder(session.NewMemoryStore(0))

		_, err := binder.Resolve(ctx, "no-such-token", uuid.Nil)
		assert.ErrorIs(t, err, session.ErrInvalidSession)
	})

	t.Run("valid token without tenant assertion", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)
		token := login(t, store)

		s, err := session.NewBinder(store).Resolve(ctx, token, uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, userID, s.UserID)
		assert.Equal(t, tenantX, s.TenantID)
	})

	t.Run("matching tenant assertion", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)
		token := login(t, store)

		s, err := session.NewBinder(store).Resolve(ctx, token, tenantX)
		require.NoError(t, err)
		assert.Equal(t, tenantX, s.TenantID)
	})

	t.Run("tenant binding violation never yields the asserted tenant", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)
		token := login(t, store)

		s, err := session.NewBinder(store).Resolve(ctx, token, tenantY)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, session.ErrTenantMismatch)

		var mismatch *session.TenantMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, tenantY, mismatch.AssertedTenantID)
		assert.Equal(t, tenantX, mismatch.BoundTenantID)

		// The session itself stays valid for its own tenant.
		again, err := session.NewBinder(store).Resolve(ctx, token, tenantX)
		require.NoError(t, err)
		assert.Equal(t, tenantX, again.TenantID)
	})

	t.Run("expired session is treated as absent", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)

		past := time.Now().Add(-2 * time.Hour)
		mgr := session.NewManager(store, session.WithTTL(time.Hour),
			session.WithManagerClock(func() time.Time { return past }))
		token, _, err := mgr.Login(ctx, userID, tenantX, session.Metadata{})
		require.NoError(t, err)

		_, err = session.NewBinder(store).Resolve(ctx, token, tenantX)
		assert.ErrorIs(t, err, session.ErrSessionExpired)

		// No renewal: a second resolve still fails.
		_, err = session.NewBinder(store).Resolve(ctx, token, tenantX)
		assert.Error(t, err)
	})
}

func TestHashToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, session.HashToken("abc"), session.HashToken("abc"))
	assert.NotEqual(t, session.HashToken("abc"), session.HashToken("abd"))
	assert.Len(t, session.HashToken("abc"), 64)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	a, err := session.GenerateToken()
	require.NoError(t, err)
	b, err := session.GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}
