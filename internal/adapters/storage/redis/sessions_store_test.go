package redis

import (
	"context"
	"testing"
	"time"

	"pet-adoption/internal/ports/auth"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_RoundTripAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewSessionStore(client)
	ctx := context.Background()
	now := time.Now()

	sess := auth.Session{
		ID:        "sid-1",
		Claims:    auth.Claims{UserID: "user-1", Email: "u@example.com"},
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, sess))
	assert.True(t, mr.Exists("sess:sid-1"))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.Claims.UserID)

	mr.FastForward(2 * time.Hour)
	_, err = store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, auth.Session{ID: "x", ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, store.Delete(ctx, "x"))

	_, err := store.Get(ctx, "x")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}
