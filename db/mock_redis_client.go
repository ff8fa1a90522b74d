package db

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// sweepInterval is how often writes purge expired keys.
const sweepInterval = time.Minute

type mockEntry struct {
	value     string
	expiresAt time.Time
}

func (e mockEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MockRedisClient simulates a Redis client in memory, expiring keys like
// redis does.
type MockRedisClient struct {
	data      map[string]mockEntry
	mu        sync.Mutex
	now       func() time.Time
	lastSweep time.Time
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{data: make(map[string]mockEntry), now: time.Now}
}

// SetClock replaces the clock used for expiry, used by tests.
func (m *MockRedisClient) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Len counts the keys that have not expired.
func (m *MockRedisClient) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for _, e := range m.data {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// lookup must be called with mu held.
func (m *MockRedisClient) lookup(key string) (string, bool) {
	e, ok := m.data[key]
	if !ok {
		return "", false
	}
	if e.expired(m.now()) {
		delete(m.data, key)
		return "", false
	}
	return e.value, true
}

// store must be called with mu held. A zero ttl never expires.
func (m *MockRedisClient) store(key, value string, ttl time.Duration) {
	now := m.now()
	e := mockEntry{value: value}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	m.data[key] = e

	if now.Sub(m.lastSweep) >= sweepInterval {
		for k, entry := range m.data {
			if entry.expired(now) {
				delete(m.data, k)
			}
		}
		m.lastSweep = now
	}
}

func (m *MockRedisClient) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(key, value, ttl)
	return nil
}

func (m *MockRedisClient) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, exists := m.lookup(key)
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

func (m *MockRedisClient) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockRedisClient) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var current int64
	if raw, ok := m.lookup(key); ok {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value at %s is not an integer: %w", key, err)
		}
		current = parsed
	}
	current++
	m.store(key, strconv.FormatInt(current, 10), ttl)
	return current, nil
}

func (m *MockRedisClient) SetIfEqual(_ context.Context, guardKey, expected, key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current, _ := m.lookup(guardKey); current != expected {
		return false, nil
	}
	m.store(key, value, ttl)
	return true, nil
}

func (m *MockRedisClient) Ping(_ context.Context) error {
	return nil
}
