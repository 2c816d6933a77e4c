package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	bl := NewInMemoryTokenBlacklist()
	bl.now = func() time.Time { return now }

	require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

	revoked, err := bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = bl.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = bl.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, bl.expires)
}

func TestInMemoryTokenBlacklist_IgnoresExpiredTokens(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	require.NoError(t, bl.AddToBlacklist(context.Background(), "jti", 0))
	assert.Empty(t, bl.expires)
}

func TestBlacklistKey(t *testing.T) {
	assert.Equal(t, "streetmart:token:revoked:abc", blacklistKey("abc"))
}
