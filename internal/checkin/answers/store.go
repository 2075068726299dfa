package answers

import (
	"context"
	"sync"

	"checkin/pkg/sentinel"
)

// Store persists answer sets keyed by wizard session id. Implementations must
// return sentinel.ErrNotFound for sessions that have no set. The API is a
// whole-set put: two tabs racing the same session resolve last-write-wins,
// which is accepted product behavior (no merge, no lock).
type Store interface {
	Get(ctx context.Context, sessionID string) (*Set, error)
	Put(ctx context.Context, sessionID string, set *Set) error
	Delete(ctx context.Context, sessionID string) error
}

// InMemoryStore keeps answer sets in a map. Used in development and tests;
// production deployments use the Redis store so instances can share sessions.
type InMemoryStore struct {
	mu   sync.RWMutex
	sets map[string]*Set
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sets: make(map[string]*Set)}
}

func (s *InMemoryStore) Get(_ context.Context, sessionID string) (*Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if set, ok := s.sets[sessionID]; ok {
		return clone(set), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Put(_ context.Context, sessionID string, set *Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[sessionID] = clone(set)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, sessionID)
	return nil
}

// clone deep-copies a set so callers and the store never share the aspect
// slice or detail map; a struct copy alone would alias both.
func clone(set *Set) *Set {
	copied := *set
	if set.Aspects != nil {
		copied.Aspects = append([]string(nil), set.Aspects...)
	}
	if set.AspectDetails != nil {
		copied.AspectDetails = make(map[string]string, len(set.AspectDetails))
		for aspect, detail := range set.AspectDetails {
			copied.AspectDetails[aspect] = detail
		}
	}
	return &copied
}
