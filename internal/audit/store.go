package audit

import (
	"context"
	"sync"
)

// Store is an append-only audit sink with a per-submission read view for the
// practitioner surface.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubmission(ctx context.Context, submissionID string) ([]Event, error)
}

// InMemoryStore keeps events in a slice, for development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListBySubmission(_ context.Context, submissionID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.SubmissionID == submissionID {
			out = append(out, e)
		}
	}
	return out, nil
}
