package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedRequest holds the parts of a backend request tests assert on.
type capturedRequest struct {
	Method string
	Path   string
	Auth   string
}

// requestRecorder captures every request the CLI sends to the fake
// backend.
type requestRecorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *requestRecorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, capturedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Auth:   req.Header.Get("Authorization"),
	})
}

func (r *requestRecorder) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.requests))
	for i, req := range r.requests {
		out[i] = req.Method + " " + req.Path
	}
	return out
}

// newFakeBackend serves a seeded admin login plus canned JSON per route.
func newFakeBackend(t *testing.T, rec *requestRecorder, routes map[string]string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		var payload struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload.Username != "admin" || payload.Password != "admin123" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"login successful",` +
			`"user":{"id":1,"username":"admin","name":"Ada","lastName":"Min","role":"ADMIN"}}`))
	})
	for pattern, body := range routes {
		b := body
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(b))
		})
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"not found"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// runCommand executes zooctl with args against host, with an isolated
// HOME so each test gets its own config and session files.
func runCommand(t *testing.T, host string, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--host", host}, args...))
	return cmd.Execute()
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoginPersistsSession(t *testing.T) {
	home := isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, nil)

	require.NoError(t, runCommand(t, srv.URL,
		"login", "-u", "admin", "--password", "admin123"))

	sessionPath := filepath.Join(home, ".zooadmin", "session.json")
	raw, err := os.ReadFile(sessionPath)
	require.NoError(t, err, "login must persist the session file")

	var state struct {
		Principal struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"principal"`
	}
	require.NoError(t, json.Unmarshal(raw, &state))
	assert.Equal(t, "admin", state.Principal.Username)
	assert.Equal(t, "ADMIN", state.Principal.Role)

	// A later invocation reuses the stored session without logging in
	// again.
	require.NoError(t, runCommand(t, srv.URL, "whoami"))
	logins := 0
	for _, p := range rec.paths() {
		if p == "POST /auth/login" {
			logins++
		}
	}
	assert.Equal(t, 1, logins)
}

func TestLoginRejected(t *testing.T) {
	isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, nil)

	err := runCommand(t, srv.URL, "login", "-u", "admin", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect username or password")
}

func TestWhoamiWithoutSession(t *testing.T) {
	isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, nil)

	err := runCommand(t, srv.URL, "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
	assert.Empty(t, rec.paths(), "whoami is answered from local state")
}

func TestLogoutClearsSession(t *testing.T) {
	home := isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, map[string]string{
		"POST /auth/logout": `{"success":true,"message":"logged out"}`,
	})

	require.NoError(t, runCommand(t, srv.URL,
		"login", "-u", "admin", "--password", "admin123"))
	require.NoError(t, runCommand(t, srv.URL, "logout"))

	_, err := os.Stat(filepath.Join(home, ".zooadmin", "session.json"))
	assert.True(t, os.IsNotExist(err), "logout must remove the session file")
	assert.Contains(t, rec.paths(), "POST /auth/logout")
}

func TestAnimalCommands(t *testing.T) {
	isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, map[string]string{
		"GET /animal/list":        `[{"id":1,"name":"Leo","category":"MAMMAL","weight":190}]`,
		"GET /animal/1":           `{"id":1,"name":"Leo","category":"MAMMAL","weight":190}`,
		"POST /animal/add":        `{"id":2,"name":"Iris","category":"BIRD","weight":2}`,
		"PUT /animal/update/1":    `{"id":1,"name":"Leo","category":"MAMMAL","weight":195}`,
		"DELETE /animal/delete/1": `{"success":true}`,
	})

	require.NoError(t, runCommand(t, srv.URL,
		"login", "-u", "admin", "--password", "admin123"))

	require.NoError(t, runCommand(t, srv.URL, "animal", "list"))
	require.NoError(t, runCommand(t, srv.URL, "animal", "get", "1"))
	require.NoError(t, runCommand(t, srv.URL,
		"animal", "add", "--name", "Iris", "--category", "BIRD", "--weight", "2"))
	require.NoError(t, runCommand(t, srv.URL,
		"animal", "update", "1", "--weight", "195"))
	require.NoError(t, runCommand(t, srv.URL, "animal", "delete", "1"))

	paths := rec.paths()
	assert.Contains(t, paths, "GET /animal/list")
	assert.Contains(t, paths, "GET /animal/1")
	assert.Contains(t, paths, "POST /animal/add")
	assert.Contains(t, paths, "PUT /animal/update/1")
	assert.Contains(t, paths, "DELETE /animal/delete/1")
}

func TestAnimalAddRequiresNameAndCategory(t *testing.T) {
	isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, nil)

	require.NoError(t, runCommand(t, srv.URL,
		"login", "-u", "admin", "--password", "admin123"))

	err := runCommand(t, srv.URL, "animal", "add", "--weight", "2")
	require.Error(t, err)
	for _, p := range rec.paths() {
		assert.NotEqual(t, "POST /animal/add", p, "validation must fail before any request")
	}
}

func TestTicketActionCommands(t *testing.T) {
	isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, map[string]string{
		"GET /ticket/dashboard":    `[{"id":42,"title":"Controllo","ticketUrgency":"ALTO","user":null}]`,
		"POST /ticket/42/accept":   `{"id":42,"title":"Controllo","ticketUrgency":"ALTO","user":1}`,
		"POST /ticket/42/complete": `{"id":42,"title":"Controllo","ticketUrgency":"ALTO","user":1}`,
		"GET /ticket/my-tickets":   `[]`,
	})

	require.NoError(t, runCommand(t, srv.URL,
		"login", "-u", "admin", "--password", "admin123"))

	require.NoError(t, runCommand(t, srv.URL, "ticket", "list"))
	require.NoError(t, runCommand(t, srv.URL, "ticket", "accept", "42"))
	require.NoError(t, runCommand(t, srv.URL, "ticket", "complete", "42"))
	require.NoError(t, runCommand(t, srv.URL, "ticket", "list", "--mine"))

	paths := rec.paths()
	assert.Contains(t, paths, "GET /ticket/dashboard")
	assert.Contains(t, paths, "POST /ticket/42/accept")
	assert.Contains(t, paths, "POST /ticket/42/complete")
	assert.Contains(t, paths, "GET /ticket/my-tickets")
}

func TestTicketListFlagsAreExclusive(t *testing.T) {
	isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, nil)

	require.NoError(t, runCommand(t, srv.URL,
		"login", "-u", "admin", "--password", "admin123"))

	err := runCommand(t, srv.URL, "ticket", "list", "--mine", "--all")
	require.Error(t, err)
}

func TestErrorPropagation(t *testing.T) {
	isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, nil)

	require.NoError(t, runCommand(t, srv.URL,
		"login", "-u", "admin", "--password", "admin123"))

	// The fallback route answers 404 for everything unrouted.
	err := runCommand(t, srv.URL, "animal", "get", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resource not found")
}

func TestInvalidOutputFormat(t *testing.T) {
	isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, nil)

	err := runCommand(t, srv.URL, "-o", "xml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
	assert.Empty(t, rec.paths())
}

func TestConfigProfiles(t *testing.T) {
	home := isolateHome(t)
	rec := &requestRecorder{}
	srv := newFakeBackend(t, rec, nil)

	require.NoError(t, runCommand(t, srv.URL,
		"config", "set-profile", "--name", "staging", "--host", "http://staging:8080", "--output", "json"))
	require.NoError(t, runCommand(t, srv.URL, "config", "use-profile", "staging"))

	cfg, err := LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.CurrentProfile)
	assert.Equal(t, "http://staging:8080", cfg.Profiles["staging"].Host)
	assert.Equal(t, "json", cfg.Profiles["staging"].Output)

	info, err := os.Stat(filepath.Join(home, ".zooadmin", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
