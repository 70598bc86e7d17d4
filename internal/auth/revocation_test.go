package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRevoker(t *testing.T) {
	mr := miniredis.RunT(t)
	r, err := NewRedisRevoker("redis://" + mr.Addr())
	require.NoError(t, err)
	defer r.Close()

	ctx := context.Background()
	require.NoError(t, r.Ping(ctx))

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// entries disappear once the token would have expired anyway
	mr.FastForward(2 * time.Hour)
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevokerSkipsExpiredTokens(t *testing.T) {
	mr := miniredis.RunT(t)
	r, err := NewRedisRevoker("redis://" + mr.Addr())
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("revoked:old"))
}

func TestNewRedisRevokerBadURL(t *testing.T) {
	_, err := NewRedisRevoker("::nope")
	assert.Error(t, err)
}

func TestNoopRevoker(t *testing.T) {
	var r Revoker = NoopRevoker{}
	require.NoError(t, r.Revoke(context.Background(), "x", time.Now().Add(time.Hour)))
	revoked, err := r.IsRevoked(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, revoked)
}
