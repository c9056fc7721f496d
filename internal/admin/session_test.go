package admin

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresTokenAndNavigates(t *testing.T) {
	b, c, store := newBackend(t)
	require.NoError(t, store.Clear())
	b.set("POST /api/auth/login", http.StatusOK,
		`{"token":"fresh","expires_at":"2026-01-01T00:00:00Z","user":{"id":"u1","username":"admin","email":"a@b.c"}}`)

	n, nav := &notes{}, &navigation{}
	s := NewSession(c, store, n, nav)

	user, err := s.Login(context.Background(), "a@b.c", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	token, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "fresh", token)
	assert.True(t, s.LoggedIn())
	assert.Equal(t, []string{PathDashboard}, nav.paths)

	calls := b.recorded()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Auth, "login must not send a token")
	assert.JSONEq(t, `{"email":"a@b.c","password":"secret123"}`, calls[0].Body)
}

func TestLoginFailureStoresNothing(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server message", http.StatusUnauthorized, `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"no message", http.StatusInternalServerError, `{}`, "Login failed"},
		{"ok without token", http.StatusOK, `{}`, "Login failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, c, store := newBackend(t)
			b.set("POST /api/auth/login", tt.status, tt.body)
			_, ok := store.Get()
			require.True(t, ok, "an earlier session is stored")

			n, nav := &notes{}, &navigation{}
			_, err := NewSession(c, store, n, nav).Login(context.Background(), "a@b.c", "wrong")
			require.Error(t, err)

			_, ok = store.Get()
			assert.False(t, ok)
			assert.Equal(t, []string{tt.want}, n.errors)
			assert.Empty(t, nav.paths)
		})
	}
}

func TestLoginUnreachableKeepsStore(t *testing.T) {
	_, _, store := newBackend(t)
	n, nav := &notes{}, &navigation{}

	_, err := NewSession(unreachableClient(t), store, n, nav).Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.Equal(t, []string{MsgUnreachable}, n.errors)
	assert.Empty(t, nav.paths)
	token, ok := store.Get()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestLogoutClearsToken(t *testing.T) {
	_, c, store := newBackend(t)
	nav := &navigation{}
	s := NewSession(c, store, &notes{}, nav)
	require.True(t, s.LoggedIn())

	require.NoError(t, s.Logout())
	assert.False(t, s.LoggedIn())
	assert.Equal(t, []string{PathLogin}, nav.paths)
}
