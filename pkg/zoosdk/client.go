package zoosdk

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds every request issued by a Client. The original
// dashboard had no timeout at all and a hung request blocked its code path
// forever; a bounded default is a deliberate strengthening.
const DefaultTimeout = 10 * time.Second

// Client is the authenticated HTTP gateway to the zoo-management backend.
// It builds a Basic auth header for every call from the session store,
// dispatches the request, and translates transport and status outcomes
// into typed *APIError failures.
//
// Every call is independent: there is no response caching, no request
// deduplication and no retry. A Client is safe for concurrent use.
type Client struct {
	// BaseURL is the backend root, e.g. "http://localhost:8081/api".
	BaseURL string

	// HTTPClient performs the actual requests. Replace it in tests or to
	// tune timeouts; the default carries DefaultTimeout.
	HTTPClient *http.Client

	// Store supplies (and receives re-derived) session state.
	Store SessionStore

	mu         sync.Mutex
	authHeader string // lazily memoized Basic header
}

// NewClient returns a Client rooted at baseURL, reading credentials from
// store.
func NewClient(baseURL string, store SessionStore) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Store:      store,
	}
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// authorization returns the Authorization header value for the next
// request. It prefers the memoized header, then the persisted header, then
// derives one from stored credentials, persisting the re-derived value so
// later processes skip the work (self-healing cache). With neither header
// nor credentials available it fails with ErrNotAuthenticated before any
// network I/O.
func (c *Client) authorization() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authHeader != "" {
		return c.authHeader, nil
	}

	state, ok, err := c.Store.Load()
	if err != nil || !ok {
		return "", ErrNotAuthenticated
	}

	switch {
	case state.AuthHeader != "":
		c.authHeader = state.AuthHeader
	case state.Credentials != nil:
		c.authHeader = state.Credentials.BasicAuthHeader()
		state.AuthHeader = c.authHeader
		// Best effort: the header stays usable even if the write fails.
		_ = c.Store.Save(state)
	default:
		return "", ErrNotAuthenticated
	}

	return c.authHeader, nil
}

// setAuthorization primes the memoized header after a fresh login.
func (c *Client) setAuthorization(header string) {
	c.mu.Lock()
	c.authHeader = header
	c.mu.Unlock()
}

// resetAuthorization drops the memoized header on logout.
func (c *Client) resetAuthorization() {
	c.mu.Lock()
	c.authHeader = ""
	c.mu.Unlock()
}
