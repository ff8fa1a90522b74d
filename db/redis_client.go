package db

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the methods the session store needs from redis.
type RedisClient interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	// Incr increments the counter at key and refreshes its ttl.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// SetIfEqual writes key only while guardKey still holds expected.
	SetIfEqual(ctx context.Context, guardKey, expected, key, value string, ttl time.Duration) (bool, error)
	Ping(ctx context.Context) error
}
