package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"checkin/pkg/sentinel"
)

// InMemoryStore keeps session state in a map, for development and tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*State)}
}

func (s *InMemoryStore) Get(_ context.Context, sessionID string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.sessions[sessionID]; ok {
		copied := *state
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Put(_ context.Context, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *state
	s.sessions[state.ID] = &copied
	return nil
}

const sessionKeyPrefix = "checkin:session:"

// RedisStore is the production session store. The TTL is the inactivity
// window: every Put refreshes it, so an idle browser times out server-side.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*State, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) Put(ctx context.Context, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+state.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}
