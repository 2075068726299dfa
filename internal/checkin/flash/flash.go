// Package flash carries validation errors and the raw submitted body across
// the redirect-back-on-failure round trip. A payload is written by the failed
// POST, consumed exactly once by the next GET's render, and gone after that.
package flash

import (
	"context"
	"net/url"
	"sync"

	"checkin/internal/checkin/forms"
	"checkin/pkg/sentinel"
)

// Payload is the pending redirect payload: the issues to show and the raw
// body to re-populate the form with what the user typed.
type Payload struct {
	Issues []forms.Issue `json:"issues"`
	Body   url.Values    `json:"body"`
}

// Store holds at most one payload per (session, page) slot.
// Take returns sentinel.ErrNotFound when the slot is empty.
type Store interface {
	Put(ctx context.Context, sessionID, page string, payload Payload) error
	// Take reads and clears the slot in one step.
	Take(ctx context.Context, sessionID, page string) (Payload, error)
}

// InMemoryStore keeps pending payloads in a map, for development and tests.
type InMemoryStore struct {
	mu    sync.Mutex
	slots map[string]Payload
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{slots: make(map[string]Payload)}
}

func slotKey(sessionID, page string) string {
	return sessionID + "|" + page
}

func (s *InMemoryStore) Put(_ context.Context, sessionID, page string, payload Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slotKey(sessionID, page)] = payload
	return nil
}

func (s *InMemoryStore) Take(_ context.Context, sessionID, page string) (Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := slotKey(sessionID, page)
	payload, ok := s.slots[key]
	if !ok {
		return Payload{}, sentinel.ErrNotFound
	}
	delete(s.slots, key)
	return payload, nil
}
