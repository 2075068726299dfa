package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"checkin/pkg/sentinel"
)

const flashKeyPrefix = "checkin:flash:"

// RedisStore holds pending redirect payloads in Redis. GETDEL makes the
// read-once contract atomic across instances. A short TTL bounds abandoned
// slots.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, sessionID, page string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode flash payload: %w", err)
	}
	key := flashKeyPrefix + slotKey(sessionID, page)
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put flash payload: %w", err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, sessionID, page string) (Payload, error) {
	key := flashKeyPrefix + slotKey(sessionID, page)
	raw, err := s.client.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Payload{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Payload{}, fmt.Errorf("take flash payload: %w", err)
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Payload{}, fmt.Errorf("decode flash payload: %w", err)
	}
	return payload, nil
}
