package tmdb

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

// fakeTMDB stands in for the TMDB API and counts the requests it receives
type fakeTMDB struct {
	t *testing.T

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
}

func newFakeTMDB(t *testing.T) (*fakeTMDB, *httptest.Server) {
	t.Helper()

	f := &fakeTMDB{
		t:        t,
		handlers: make(map[string]http.HandlerFunc),
		calls:    make(map[string]int),
	}
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)
	return f, server
}

func (f *fakeTMDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.calls[key]++
	handler, ok := f.handlers[key]
	f.mu.Unlock()

	if !strings.HasPrefix(r.URL.Path, "/t/p/") {
		assert.Equal(f.t, testAPIKey, r.URL.Query().Get("api_key"), "api_key missing on %s", key)
	}

	if !ok {
		respond(w, http.StatusNotFound, `{"success":false,"status_code":34,"status_message":"The resource you requested could not be found."}`)
		return
	}
	handler(w, r)
}

func (f *fakeTMDB) handle(method, path string, handler http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method+" "+path] = handler
}

// reply registers a fixed response
func (f *fakeTMDB) reply(method, path string, status int, body any) {
	f.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		respond(w, status, body)
	})
}

func (f *fakeTMDB) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

// respond writes body as-is when it is a string, JSON-encoded otherwise
func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if raw, ok := body.(string); ok {
		_, _ = w.Write([]byte(raw))
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(baseURL, testAPIKey, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

// authenticatedClient returns a client whose session already holds credentials
func authenticatedClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client := newTestClient(t, baseURL)
	client.session.setSessionID("session-abc")
	client.session.setUserID(42)
	return client
}

func movieJSON(id int, title, posterPath string) map[string]any {
	movie := map[string]any{
		"id":    id,
		"title": title,
	}
	if posterPath != "" {
		movie["poster_path"] = posterPath
	} else {
		movie["poster_path"] = nil
	}
	return movie
}

func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
