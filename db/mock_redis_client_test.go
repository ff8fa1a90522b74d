package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRedisClient_WritesPurgeExpiredKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	client := NewMockRedisClient()
	client.SetClock(func() time.Time { return now })

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, client.Set(ctx, key, "v", time.Minute))
	}
	require.Len(t, client.data, 3)

	now = now.Add(time.Hour)
	require.NoError(t, client.Set(ctx, "d", "v", time.Minute))

	assert.Len(t, client.data, 1)
	assert.Contains(t, client.data, "d")
}
