package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func TestDenylist_RevocaHastaExpiracion(t *testing.T) {
	mr, client := setupTestRedis(t)
	d := NewDenylist(client)
	ctx := context.Background()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Now().Add(10*time.Minute)))
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists(defaultPrefix+"jti-1"))

	mr.FastForward(11 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "la clave expira con el token")
}

func TestDenylist_TokenVencidoNoSeGuarda(t *testing.T) {
	mr, client := setupTestRedis(t)
	d := NewDenylist(client)

	require.NoError(t, d.Revoke(context.Background(), "jti-viejo", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists(defaultPrefix+"jti-viejo"))
}

func TestNewClient_PingFallido(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewClient(context.Background(), Config{Addr: addr})
	assert.Error(t, err)
}
