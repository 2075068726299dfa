package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureMintsSessionAndCookie(t *testing.T) {
	svc := NewService(NewInMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	id, err := svc.Ensure(w, req)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestEnsureReusesExistingCookie(t *testing.T) {
	svc := NewService(NewInMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "existing"})
	w := httptest.NewRecorder()

	id, err := svc.Ensure(w, req)
	require.NoError(t, err)
	assert.Equal(t, "existing", id)
	assert.Empty(t, w.Result().Cookies())
}

func TestMarkAndCheckVerified(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryStore())

	verified, err := svc.IsVerified(ctx, "sess-1", "sub-1")
	require.NoError(t, err)
	assert.False(t, verified)

	require.NoError(t, svc.MarkVerified(ctx, "sess-1", "sub-1"))

	verified, err = svc.IsVerified(ctx, "sess-1", "sub-1")
	require.NoError(t, err)
	assert.True(t, verified)

	// The marker is scoped to the submission it was earned for.
	verified, err = svc.IsVerified(ctx, "sess-1", "sub-2")
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestMarkVerifiedCreatesUnknownSession(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	svc := NewService(store)

	require.NoError(t, svc.MarkVerified(ctx, "fresh", "sub-1"))

	state, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, state.Verified["sub-1"])
}

func TestTouchIgnoresUnknownSession(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	assert.NoError(t, svc.Touch(context.Background(), "nope"))
}

func TestTouchRewritesKnownSession(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	svc := NewService(store)

	require.NoError(t, store.Put(ctx, &State{ID: "sess-1", Verified: map[string]bool{"sub-1": true}}))
	require.NoError(t, svc.Touch(ctx, "sess-1"))

	state, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, state.Verified["sub-1"])
}
