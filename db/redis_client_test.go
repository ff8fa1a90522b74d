package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bus-arrival-server/db"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisClient(t *testing.T) (*db.SessionRedisClient, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client, err := db.NewSessionRedisClient(context.Background(), redis.NewClient(&redis.Options{Addr: server.Addr()}))
	require.NoError(t, err)
	return client, server
}

func clients(t *testing.T) []struct {
	name   string
	client db.RedisClient
} {
	redisClient, _ := newMiniredisClient(t)
	return []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient()},
		{"SessionRedisClient", redisClient},
	}
}

func TestRedisClient_SetAndGet(t *testing.T) {
	ctx := context.Background()
	for _, test := range clients(t) {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set(ctx, "test-key", "test-value", time.Minute))

			retrieved, err := test.client.Get(ctx, "test-key")
			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)
		})
	}
}

func TestRedisClient_GetMissingKey(t *testing.T) {
	ctx := context.Background()
	for _, test := range clients(t) {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.client.Get(ctx, "missing")
			assert.True(t, errors.Is(err, db.ErrKeyNotFound))
		})
	}
}

func TestRedisClient_Del(t *testing.T) {
	ctx := context.Background()
	for _, test := range clients(t) {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set(ctx, "k", "v", 0))
			require.NoError(t, test.client.Del(ctx, "k"))

			_, err := test.client.Get(ctx, "k")
			assert.ErrorIs(t, err, db.ErrKeyNotFound)
		})
	}
}

func TestRedisClient_Incr(t *testing.T) {
	ctx := context.Background()
	for _, test := range clients(t) {
		t.Run(test.name, func(t *testing.T) {
			first, err := test.client.Incr(ctx, "gen", time.Minute)
			require.NoError(t, err)
			second, err := test.client.Incr(ctx, "gen", time.Minute)
			require.NoError(t, err)

			assert.Equal(t, int64(1), first)
			assert.Equal(t, int64(2), second)
		})
	}
}

func TestRedisClient_SetIfEqual(t *testing.T) {
	ctx := context.Background()
	for _, test := range clients(t) {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.client.Incr(ctx, "gen", 0)
			require.NoError(t, err)

			applied, err := test.client.SetIfEqual(ctx, "gen", "1", "session", "first", 0)
			require.NoError(t, err)
			assert.True(t, applied)

			_, err = test.client.Incr(ctx, "gen", 0)
			require.NoError(t, err)

			applied, err = test.client.SetIfEqual(ctx, "gen", "1", "session", "stale", 0)
			require.NoError(t, err)
			assert.False(t, applied)

			value, err := test.client.Get(ctx, "session")
			require.NoError(t, err)
			assert.Equal(t, "first", value)
		})
	}
}

func TestRedisClient_SetIfEqualOnOwnValue(t *testing.T) {
	ctx := context.Background()
	for _, test := range clients(t) {
		t.Run(test.name, func(t *testing.T) {
			applied, err := test.client.SetIfEqual(ctx, "session", "", "session", "v1", time.Minute)
			require.NoError(t, err)
			assert.True(t, applied, "missing key compares equal to empty")

			applied, err = test.client.SetIfEqual(ctx, "session", "", "session", "lost", time.Minute)
			require.NoError(t, err)
			assert.False(t, applied)

			applied, err = test.client.SetIfEqual(ctx, "session", "v1", "session", "v2", time.Minute)
			require.NoError(t, err)
			assert.True(t, applied)

			value, err := test.client.Get(ctx, "session")
			require.NoError(t, err)
			assert.Equal(t, "v2", value)
		})
	}
}

func TestRedisClient_Ping(t *testing.T) {
	for _, test := range clients(t) {
		t.Run(test.name, func(t *testing.T) {
			assert.NoError(t, test.client.Ping(context.Background()))
		})
	}
}

func TestSessionRedisClient_TTL(t *testing.T) {
	client, server := newMiniredisClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "session", "v", time.Minute))
	_, err := client.Incr(ctx, "gen", time.Minute)
	require.NoError(t, err)

	server.FastForward(2 * time.Minute)

	_, err = client.Get(ctx, "session")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)
	_, err = client.Get(ctx, "gen")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}

func TestNewSessionRedisClient_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := db.NewSessionRedisClient(context.Background(), redis.NewClient(&redis.Options{Addr: addr}))
	assert.Error(t, err)
}

func TestMockRedisClient_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	client := db.NewMockRedisClient()
	client.SetClock(func() time.Time { return now })

	require.NoError(t, client.Set(ctx, "session", "v", time.Minute))
	require.NoError(t, client.Set(ctx, "forever", "v", 0))
	_, err := client.Incr(ctx, "gen", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 3, client.Len())

	now = now.Add(2 * time.Minute)

	_, err = client.Get(ctx, "session")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)
	gen, err := client.Incr(ctx, "gen", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen, "expired counter restarts")
	assert.Equal(t, 2, client.Len())
}

