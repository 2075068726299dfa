package answers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"checkin/pkg/sentinel"
)

var getDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "checkin_answer_store_get_duration_ms",
	Help:    "Latency of answer set reads in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const answerKeyPrefix = "checkin:answers:"

// RedisStore is a Redis-backed answer store. The TTL doubles as the session
// inactivity window: every Put refreshes it.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore constructs a Redis-backed answer store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Set, error) {
	start := time.Now()
	defer func() {
		getDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	raw, err := s.client.Get(ctx, answerKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get answer set: %w", err)
	}

	var set Set
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("decode answer set: %w", err)
	}
	return &set, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, set *Set) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode answer set: %w", err)
	}
	if err := s.client.Set(ctx, answerKeyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put answer set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, answerKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete answer set: %w", err)
	}
	return nil
}
