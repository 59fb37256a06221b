package zoosdk

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedStore() *memStore {
	store := &memStore{}
	_ = store.Save(SessionState{
		Principal:   &Principal{ID: 1, Username: "admin", Role: RoleAdmin},
		Credentials: &Credentials{Username: "admin", Password: "admin123"},
		AuthHeader:  basicHeader("admin", "admin123"),
	})
	return store
}

// jsonBackend records every request and answers everything with the given
// status and body.
func jsonBackend(t *testing.T, rec *requestRecorder, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rec.record(r, raw)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAcceptTicketSendsSingleEmptyPost(t *testing.T) {
	t.Parallel()

	rec := &requestRecorder{}
	srv := jsonBackend(t, rec, http.StatusOK,
		`{"id":42,"title":"Controllo recinzione","ticketUrgency":"ALTO","user":1}`)
	client := NewClient(srv.URL, authedStore())

	ticket, err := client.AcceptTicket(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.Equal(t, int64(42), ticket.ID)
	assert.True(t, ticket.Assigned())

	require.Equal(t, 1, rec.count(), "accept must issue exactly one request")
	got := rec.last()
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/ticket/42/accept", got.Path)
	assert.Empty(t, got.Body, "accept carries no request body")
	assert.Equal(t, basicHeader("admin", "admin123"), got.Auth)
}

func TestCompleteTicketPath(t *testing.T) {
	t.Parallel()

	rec := &requestRecorder{}
	srv := jsonBackend(t, rec, http.StatusOK, `{"id":7,"title":"Visita"}`)
	client := NewClient(srv.URL, authedStore())

	_, err := client.CompleteTicket(context.Background(), 7)
	require.NoError(t, err)
	got := rec.last()
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/ticket/7/complete", got.Path)
	assert.Empty(t, got.Body)
}

func TestResourcePathsAndVerbs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
		body   string
	}{
		{
			name:   "list animals",
			call:   func(c *Client) error { _, err := c.ListAnimals(context.Background()); return err },
			method: http.MethodGet,
			path:   "/animal/list",
			body:   `[]`,
		},
		{
			name:   "get animal",
			call:   func(c *Client) error { _, err := c.GetAnimal(context.Background(), 7); return err },
			method: http.MethodGet,
			path:   "/animal/7",
		},
		{
			name: "update animal",
			call: func(c *Client) error {
				_, err := c.UpdateAnimal(context.Background(), 7, Animal{Name: "Leo"})
				return err
			},
			method: http.MethodPut,
			path:   "/animal/update/7",
		},
		{
			name:   "delete animal",
			call:   func(c *Client) error { return c.DeleteAnimal(context.Background(), 7) },
			method: http.MethodDelete,
			path:   "/animal/delete/7",
		},
		{
			name: "update enclosure",
			call: func(c *Client) error {
				_, err := c.UpdateEnclosure(context.Background(), 7, Enclosure{Name: "Savana"})
				return err
			},
			method: http.MethodPut,
			path:   "/enclosure/7",
		},
		{
			name:   "delete enclosure",
			call:   func(c *Client) error { return c.DeleteEnclosure(context.Background(), 7) },
			method: http.MethodDelete,
			path:   "/enclosure/7",
		},
		{
			name: "update user",
			call: func(c *Client) error {
				_, err := c.UpdateUser(context.Background(), 7, UserInput{Username: "mara"})
				return err
			},
			method: http.MethodPut,
			path:   "/user/update/7",
		},
		{
			name:   "dashboard tickets",
			call:   func(c *Client) error { _, err := c.DashboardTickets(context.Background()); return err },
			method: http.MethodGet,
			path:   "/ticket/dashboard",
			body:   `[]`,
		},
		{
			name:   "my tickets",
			call:   func(c *Client) error { _, err := c.MyTickets(context.Background()); return err },
			method: http.MethodGet,
			path:   "/ticket/my-tickets",
			body:   `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body := tt.body
			if body == "" {
				body = `{}`
			}
			rec := &requestRecorder{}
			srv := jsonBackend(t, rec, http.StatusOK, body)
			client := NewClient(srv.URL, authedStore())

			require.NoError(t, tt.call(client))
			got := rec.last()
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
		})
	}
}

func TestStatusCodeMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   *APIError
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"conflict is a server-side refusal", http.StatusConflict, ErrServer},
		{"internal error", http.StatusInternalServerError, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &requestRecorder{}
			srv := jsonBackend(t, rec, tt.status, `{"success":false,"message":"nope"}`)
			client := NewClient(srv.URL, authedStore())

			_, err := client.GetAnimal(context.Background(), 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestUnauthenticatedCallSkipsNetwork(t *testing.T) {
	t.Parallel()

	rec := &requestRecorder{}
	srv := jsonBackend(t, rec, http.StatusOK, `[]`)
	client := NewClient(srv.URL, &memStore{})

	_, err := client.ListAnimals(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 0, rec.count(), "no request may leave the client without credentials")
}

func TestAuthorizationSelfHealsMissingHeader(t *testing.T) {
	t.Parallel()

	rec := &requestRecorder{}
	srv := jsonBackend(t, rec, http.StatusOK, `[]`)

	// Credentials on disk but no precomputed header, as an older session
	// file would have it.
	store := &memStore{}
	_ = store.Save(SessionState{
		Credentials: &Credentials{Username: "admin", Password: "admin123"},
	})
	client := NewClient(srv.URL, store)

	_, err := client.ListAnimals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, basicHeader("admin", "admin123"), rec.last().Auth)

	state, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, basicHeader("admin", "admin123"), state.AuthHeader, "derived header is written back")
}

func TestTransportFailureMapsToTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, authedStore())

	_, err := client.ListEnclosures(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Error(t, errors.Unwrap(err))
}

func TestTestConnectionPlainText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Connection OK"))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, authedStore())
	msg, err := client.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Connection OK", msg)
}

func TestGroupAnimalsByCategory(t *testing.T) {
	t.Parallel()

	animals := []Animal{
		{ID: 1, Name: "Leo", Category: CategoryMammal},
		{ID: 2, Name: "Iris", Category: CategoryBird},
		{ID: 3, Name: "Zara", Category: CategoryMammal},
	}

	grouped := GroupAnimalsByCategory(animals)
	require.Len(t, grouped, 2)
	assert.Len(t, grouped[CategoryMammal], 2)
	assert.Len(t, grouped[CategoryBird], 1)
	assert.Equal(t, "Iris", grouped[CategoryBird][0].Name)
}

func TestGroupUsersByRole(t *testing.T) {
	t.Parallel()

	users := []User{
		{ID: 1, Username: "admin", Role: RoleAdmin},
		{ID: 2, Username: "otto", Role: RoleOperator},
		{ID: 3, Username: "vera", Role: RoleOperator},
	}

	grouped := GroupUsersByRole(users)
	require.Len(t, grouped, 2)
	assert.Len(t, grouped[RoleOperator], 2)
	assert.Len(t, grouped[RoleAdmin], 1)
}
