package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bus-arrival-server/db"
	"bus-arrival-server/models"
)

const SESSION_KEY_FORMAT_V1 = "bus_session_v1:%s"

// SESSION_GENERATION_KEY_FORMAT_V1 holds the latest query generation of a session.
const SESSION_GENERATION_KEY_FORMAT_V1 = "bus_session_gen_v1:%s"

// MAX_UPDATE_ATTEMPTS bounds the retries of one Update under contention.
const MAX_UPDATE_ATTEMPTS = 8

// ErrSessionConflict is returned when Update keeps losing to concurrent writers.
var ErrSessionConflict = errors.New("session changed concurrently")

// RedisSessionDAO persists board sessions as JSON in redis.
type RedisSessionDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

// NewRedisSessionDAO initializes a RedisSessionDAO. A zero ttl keeps sessions forever.
func NewRedisSessionDAO(client db.RedisClient, ttl time.Duration) *RedisSessionDAO {
	return &RedisSessionDAO{client: client, ttl: ttl}
}

// Load returns the stored session, or a fresh one when none exists.
func (dao *RedisSessionDAO) Load(ctx context.Context, sessionID string) (*models.Session, error) {
	s, _, err := dao.load(ctx, sessionID)
	return s, err
}

// load also returns the raw stored value, empty when the session is new.
func (dao *RedisSessionDAO) load(ctx context.Context, sessionID string) (*models.Session, string, error) {
	str, err := dao.client.Get(ctx, fmt.Sprintf(SESSION_KEY_FORMAT_V1, sessionID))
	if errors.Is(err, db.ErrKeyNotFound) {
		return models.NewSession(sessionID), "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get session from redis: %w", err)
	}
	var s models.Session
	if err := json.Unmarshal([]byte(str), &s); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}
	return &s, str, nil
}

// Update applies change to the stored session and writes it back only if no
// other write happened in between. On a conflict change runs again against
// the fresh session, so it must only depend on its argument. When change
// returns false nothing is written; the reported bool is whether the write
// happened.
func (dao *RedisSessionDAO) Update(ctx context.Context, sessionID string, change func(s *models.Session) bool) (*models.Session, bool, error) {
	key := fmt.Sprintf(SESSION_KEY_FORMAT_V1, sessionID)
	for attempt := 0; attempt < MAX_UPDATE_ATTEMPTS; attempt++ {
		s, stored, err := dao.load(ctx, sessionID)
		if err != nil {
			return nil, false, err
		}
		if !change(s) {
			return s, false, nil
		}
		data, err := json.Marshal(s)
		if err != nil {
			return nil, false, fmt.Errorf("failed to marshal session %s: %w", sessionID, err)
		}
		applied, err := dao.client.SetIfEqual(ctx, key, stored, key, string(data), dao.ttl)
		if err != nil {
			return nil, false, fmt.Errorf("failed to save session %s: %w", sessionID, err)
		}
		if applied {
			return s, true, nil
		}
	}
	return nil, false, fmt.Errorf("%w: %s", ErrSessionConflict, sessionID)
}

// NextGeneration claims a new query generation for the session.
func (dao *RedisSessionDAO) NextGeneration(ctx context.Context, sessionID string) (int64, error) {
	gen, err := dao.client.Incr(ctx, fmt.Sprintf(SESSION_GENERATION_KEY_FORMAT_V1, sessionID), dao.ttl)
	if err != nil {
		return 0, fmt.Errorf("failed to claim query generation: %w", err)
	}
	return gen, nil
}

// Delete drops the session and its generation counter.
func (dao *RedisSessionDAO) Delete(ctx context.Context, sessionID string) error {
	for _, key := range []string{
		fmt.Sprintf(SESSION_KEY_FORMAT_V1, sessionID),
		fmt.Sprintf(SESSION_GENERATION_KEY_FORMAT_V1, sessionID),
	} {
		if err := dao.client.Del(ctx, key); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", key, err)
		}
	}
	return nil
}
