// Package session tracks the browser's wizard session: a cookie-backed
// identifier plus the per-submission verification markers the gate checks.
// Session expiry falls out of store TTLs; there is no server-side logout.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"checkin/pkg/sentinel"
)

// CookieName is the wizard session cookie.
const CookieName = "checkin_session"

// State is the per-session record. Verified holds the submission ids this
// session has passed identity verification for.
type State struct {
	ID       string          `json:"id"`
	Verified map[string]bool `json:"verified"`
}

// Store persists session state. Implementations return sentinel.ErrNotFound
// for unknown sessions.
type Store interface {
	Get(ctx context.Context, sessionID string) (*State, error)
	Put(ctx context.Context, state *State) error
}

// Service wraps the store with cookie handling and the verification-marker
// contract.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Ensure returns the request's session id, minting a new session and setting
// the cookie when the request has none.
func (s *Service) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	id := uuid.NewString()
	if err := s.store.Put(r.Context(), &State{ID: id, Verified: make(map[string]bool)}); err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// MarkVerified records a successful identity check for a submission in this
// session.
func (s *Service) MarkVerified(ctx context.Context, sessionID, submissionID string) error {
	state, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		state = &State{ID: sessionID, Verified: make(map[string]bool)}
	} else if err != nil {
		return err
	}
	if state.Verified == nil {
		state.Verified = make(map[string]bool)
	}
	state.Verified[submissionID] = true
	return s.store.Put(ctx, state)
}

// Touch rewrites the session record so TTL-based stores refresh the
// inactivity window. A vanished session is not an error; the next page load
// renders the timeout outcome anyway.
func (s *Service) Touch(ctx context.Context, sessionID string) error {
	state, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.store.Put(ctx, state)
}

// IsVerified reports whether this session has passed identity verification
// for the submission. An unknown session is simply not verified.
func (s *Service) IsVerified(ctx context.Context, sessionID, submissionID string) (bool, error) {
	state, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return state.Verified[submissionID], nil
}
