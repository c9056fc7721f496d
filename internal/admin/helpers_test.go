package admin

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sdianka/portfolio/internal/client"
	"github.com/sdianka/portfolio/internal/tokenstore"
	"github.com/stretchr/testify/require"
)

type call struct {
	Route string // "METHOD /path"
	Auth  string
	Body  string
}

type reply struct {
	Status int
	Body   string
}

// backend is a fake API answering canned replies per route and
// recording every request.
type backend struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []call
}

func (b *backend) set(route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[route] = reply{Status: status, Body: body}
}

func (b *backend) recorded() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

func (b *backend) routes() []string {
	var out []string
	for _, c := range b.recorded() {
		out = append(out, c.Route)
	}
	return out
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	route := r.Method + " " + r.URL.Path

	b.mu.Lock()
	b.calls = append(b.calls, call{Route: route, Auth: r.Header.Get("Authorization"), Body: string(body)})
	rep, ok := b.replies[route]
	b.mu.Unlock()

	if !ok {
		rep = reply{Status: http.StatusNotFound, Body: `{"error":"not found"}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.Status)
	io.WriteString(w, rep.Body)
}

// newBackend starts a fake API and returns a client for it whose token
// store already holds "tok".
func newBackend(t *testing.T) (*backend, *client.Client, *tokenstore.Store) {
	t.Helper()
	b := &backend{replies: map[string]reply{}}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	store := tokenstore.Open(filepath.Join(t.TempDir(), "storage.json"))
	require.NoError(t, store.Set("tok"))

	c, err := client.New(srv.URL+"/api", store)
	require.NoError(t, err)
	return b, c, store
}

// unreachableClient points at a closed server.
func unreachableClient(t *testing.T) *client.Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c, err := client.New(url+"/api", nil)
	require.NoError(t, err)
	return c
}

type notes struct {
	successes []string
	errors    []string
}

func (n *notes) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *notes) Error(msg string)   { n.errors = append(n.errors, msg) }

type answer struct {
	yes     bool
	prompts []string
}

func (a *answer) Confirm(prompt string) bool {
	a.prompts = append(a.prompts, prompt)
	return a.yes
}

type navigation struct {
	paths []string
}

func (n *navigation) Navigate(path string) { n.paths = append(n.paths, path) }
