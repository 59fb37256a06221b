package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

// staticVerifier accepts a single username/password pair.
type staticVerifier struct {
	username string
	password string
	identity Identity
}

func (v staticVerifier) VerifyBasic(_ context.Context, username, password string) (Identity, error) {
	if username != v.username || password != v.password {
		return Identity{}, errors.New("invalid credentials")
	}
	return v.identity, nil
}

func okHandler(t *testing.T, sawIdentity *Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sawIdentity != nil {
			identity, ok := IdentityFromCtx(r.Context())
			require.True(t, ok)
			*sawIdentity = identity
		}
		WriteText(w, http.StatusOK, "ok")
	})
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	verifier := staticVerifier{
		username: "admin",
		password: "admin123",
		identity: Identity{ID: 1, Username: "admin", Role: zoosdk.RoleAdmin},
	}

	t.Run("missing credentials get a challenge", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		handler := Chain(okHandler(t, nil), AuthnMiddleware(verifier))
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/animal/list", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Basic")
		assert.Contains(t, rr.Body.String(), "authentication required")
	})

	t.Run("wrong credentials get a challenge", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/animal/list", nil)
		req.SetBasicAuth("admin", "wrong")
		Chain(okHandler(t, nil), AuthnMiddleware(verifier)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid credentials attach the identity", func(t *testing.T) {
		t.Parallel()

		var seen Identity
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/animal/list", nil)
		req.SetBasicAuth("admin", "admin123")
		Chain(okHandler(t, &seen), AuthnMiddleware(verifier)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, int64(1), seen.ID)
		assert.Equal(t, zoosdk.RoleAdmin, seen.Role)
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	verifier := staticVerifier{
		username: "operator",
		password: "operator123",
		identity: Identity{ID: 3, Username: "operator", Role: zoosdk.RoleOperator},
	}

	t.Run("role outside the allow list is forbidden", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/animal/delete/1", nil)
		req.SetBasicAuth("operator", "operator123")
		handler := Chain(okHandler(t, nil),
			AuthnMiddleware(verifier), RequireRole(zoosdk.RoleAdmin))
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "insufficient role")
	})

	t.Run("allowed role passes through", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ticket/1/accept", nil)
		req.SetBasicAuth("operator", "operator123")
		handler := Chain(okHandler(t, nil),
			AuthnMiddleware(verifier), RequireRole(zoosdk.RoleOperator))
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unauthenticated request is challenged", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		handler := Chain(okHandler(t, nil), RequireRole(zoosdk.RoleAdmin))
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/user/list", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	// A tight window so the refill cannot interfere with the assertion.
	cfg := RateLimitConfig{RequestsPerWindow: 2, Window: time.Hour, Burst: 2}
	handler := Chain(okHandler(t, nil), RateLimit(cfg))

	doRequest := func(remoteAddr string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, doRequest("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.1:1001").Code)

	rr := doRequest("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	// Another source address keeps its own bucket.
	assert.Equal(t, http.StatusOK, doRequest("10.0.0.2:1000").Code)
}

func TestIPKeyExtractor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		expect string
	}{
		{
			name:   "remote addr fallback",
			setup:  func(r *http.Request) { r.RemoteAddr = "192.0.2.1:4711" },
			expect: "192.0.2.1",
		},
		{
			name: "x-forwarded-for wins",
			setup: func(r *http.Request) {
				r.RemoteAddr = "10.0.0.1:1000"
				r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
			},
			expect: "203.0.113.9",
		},
		{
			name: "x-real-ip as second choice",
			setup: func(r *http.Request) {
				r.RemoteAddr = "10.0.0.1:1000"
				r.Header.Set("X-Real-IP", "203.0.113.7")
			},
			expect: "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			assert.Equal(t, tt.expect, IPKeyExtractor(req))
		})
	}
}
