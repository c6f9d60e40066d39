package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*AppSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewAppSessionStore(rdb, ttl), mr
}

func TestAppSessionStore_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Hour)

	require.NoError(t, store.Create(ctx, "sid-1", "user-1"))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)

	require.NoError(t, store.Delete(ctx, "sid-1"))
	_, err = store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, redis.Nil)

	// Deleting a missing session is not an error.
	assert.NoError(t, store.Delete(ctx, "sid-1"))
}

func TestAppSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, time.Minute)

	require.NoError(t, store.Create(ctx, "sid-1", "user-1"))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestAppSessionStore_RevokeAllForUser(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Hour)

	require.NoError(t, store.Create(ctx, "sid-1", "user-1"))
	require.NoError(t, store.Create(ctx, "sid-2", "user-1"))
	require.NoError(t, store.Create(ctx, "sid-3", "user-2"))

	require.NoError(t, store.RevokeAllForUser(ctx, "user-1"))

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, redis.Nil)
	_, err = store.Get(ctx, "sid-2")
	assert.ErrorIs(t, err, redis.Nil)

	// Other users keep their sessions.
	got, err := store.Get(ctx, "sid-3")
	require.NoError(t, err)
	assert.Equal(t, "user-2", got.UserID)
}
