package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-rag-console/internal/ports"
	"github.com/target/mmk-rag-console/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func newTestSlot(t *testing.T, client redis.UniversalClient, ttl time.Duration) *TokenSlot {
	t.Helper()
	slot, err := NewTokenSlot(client, TokenSlotOptions{
		SessionID: uuid.NewString(),
		Name:      "lab_auth_token",
		TTL:       ttl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Del(context.Background(), slot.Key()).Err() })
	return slot
}

func TestNewTokenSlot_Validation(t *testing.T) {
	_, err := NewTokenSlot(nil, TokenSlotOptions{SessionID: "s"})
	require.Error(t, err)

	_, err = NewTokenSlot(redis.NewClient(&redis.Options{Addr: "localhost:0"}), TokenSlotOptions{})
	require.Error(t, err)
}

func TestNewTokenSlot_KeyLayout(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	slot, err := NewTokenSlot(client, TokenSlotOptions{SessionID: "abc", Name: "lab_auth_token"})
	require.NoError(t, err)
	assert.Equal(t, "rag:token:abc:lab_auth_token", slot.Key())

	slot, err = NewTokenSlot(client, TokenSlotOptions{SessionID: "abc", Prefix: "x:"})
	require.NoError(t, err)
	assert.Equal(t, "x:abc", slot.Key())
}

func TestTokenSlot_SaveLoadDelete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	slot := newTestSlot(t, client, 30*time.Minute)
	ctx := context.Background()

	_, err := slot.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)

	require.NoError(t, slot.Save(ctx, "tok-1"))
	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, slot.Save(ctx, "tok-2"))
	got, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got)

	require.NoError(t, slot.Delete(ctx))
	require.NoError(t, slot.Delete(ctx))
	_, err = slot.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)
}

func TestTokenSlot_TTLExpiration(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	slot := newTestSlot(t, client, 100*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, slot.Save(ctx, "short-lived"))

	// Wait for expiration
	time.Sleep(200 * time.Millisecond)

	_, err := slot.Load(ctx)
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)
}
