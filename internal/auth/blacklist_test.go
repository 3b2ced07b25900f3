package auth

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestBlacklistRevokeAndExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	bl := NewBlacklist(redis.NewClient(&redis.Options{Addr: m.Addr()}))

	ctx := context.Background()
	token := "access-token-1"
	require.NoError(t, bl.Revoke(ctx, token, 2*time.Second))

	ok, err := bl.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)

	// advance past TTL
	m.FastForward(3 * time.Second)

	ok, err = bl.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.False(t, ok)
}

// Without Redis the blacklist is a no-op and every token reads as live.
func TestBlacklistNilIsNoop(t *testing.T) {
	bl := NewBlacklist(nil)
	ctx := context.Background()
	require.NoError(t, bl.Revoke(ctx, "tok", time.Second))
	ok, err := bl.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	require.False(t, ok)
}
