package zoosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
)

// Session owns the authenticated-principal lifecycle: login, logout and
// rehydration on startup. It is the single writer of the in-memory
// principal and of the session store; every other component only reads.
//
// A Session is either anonymous or authenticated. It is safe for
// concurrent use.
type Session struct {
	client *Client
	log    *slog.Logger

	mu            sync.RWMutex
	principal     *Principal
	authenticated bool
}

// NewSession wraps a Client and rehydrates any persisted session state.
//
// If the store holds both a principal and credentials, the session becomes
// authenticated immediately without contacting the backend (optimistic
// rehydration); a missing cached auth header is recomputed from the
// credentials. A corrupt store forces the session to anonymous and clears
// the store.
func NewSession(client *Client, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	s := &Session{client: client, log: log}
	s.rehydrate()
	return s
}

func (s *Session) rehydrate() {
	state, ok, err := s.client.Store.Load()
	if err != nil {
		s.log.Warn("session storage corrupt, forcing logout", "err", err)
		_ = s.client.Store.Clear()
		return
	}
	if !ok || state.Principal == nil || state.Credentials == nil {
		return
	}

	if state.AuthHeader == "" {
		state.AuthHeader = state.Credentials.BasicAuthHeader()
		if err := s.client.Store.Save(state); err != nil {
			s.log.Warn("failed to persist recomputed auth header", "err", err)
		}
	}

	s.client.setAuthorization(state.AuthHeader)
	s.principal = state.Principal
	s.authenticated = true
	s.log.Debug("session rehydrated",
		"username", state.Principal.Username,
		"role", state.Principal.Role,
	)
}

// loginPayload is the wire shape of POST /auth/login.
type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginUser is the user object inside a login response.
type loginUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	LastName     string `json:"lastName"`
	Role         Role   `json:"role"`
	OperatorType string `json:"operatorType"`
}

// loginEnvelope tolerates the two response shapes the backend has shipped:
// the user object nested under a "user" key, or the user object as the
// whole payload. Decoding is explicit rather than probing fields at
// runtime: the envelope is tried first and the flat shape is the fallback.
type loginEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
}

func decodeLoginUser(raw []byte) (loginUser, error) {
	var env loginEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.User) > 0 {
		var u loginUser
		if err := json.Unmarshal(env.User, &u); err != nil {
			return loginUser{}, err
		}
		return u, nil
	}

	var u loginUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return loginUser{}, err
	}
	return u, nil
}

// Login authenticates against the backend and, on success, persists the
// principal, the raw credentials and the precomputed Basic auth header,
// transitioning the session to authenticated.
//
// Any non-2xx response fails with ErrInvalidCredentials; the message never
// reveals which part of the pair was wrong. Network-level failures fail
// with a transport error carrying the same generic user-facing message,
// with the raw cause reachable via errors.Unwrap. No retry is attempted.
func (s *Session) Login(ctx context.Context, username, password string) (*Principal, error) {
	body, err := json.Marshal(loginPayload{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.client.url("/auth/login"),
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		s.log.Warn("login request failed", "err", err)
		apiErr := transportError(err)
		apiErr.Message = ErrInvalidCredentials.Message
		return nil, apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrInvalidCredentials
	}

	user, err := decodeLoginUser(raw)
	if err != nil {
		return nil, &APIError{
			Kind:    KindServer,
			Message: "login response was not understood",
			cause:   err,
		}
	}

	principal := buildPrincipal(user, username)
	creds := Credentials{Username: username, Password: password}
	header := creds.BasicAuthHeader()

	state := SessionState{
		Principal:   &principal,
		Credentials: &creds,
		AuthHeader:  header,
	}
	if err := s.client.Store.Save(state); err != nil {
		return nil, err
	}
	s.client.setAuthorization(header)

	s.mu.Lock()
	s.principal = &principal
	s.authenticated = true
	s.mu.Unlock()

	s.log.Info("login succeeded", "username", principal.Username, "role", principal.Role)
	return &principal, nil
}

// buildPrincipal maps a login response user onto a Principal, enforcing the
// operator-subtype invariant: the subtype is kept only for OPERATOR roles.
func buildPrincipal(u loginUser, loginUsername string) Principal {
	p := Principal{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.Name,
		LastName:  u.LastName,
		Role:      u.Role,
	}
	if p.Username == "" {
		p.Username = loginUsername
	}
	if p.FirstName == "" {
		p.FirstName = loginUsername
	}
	if p.Role == RoleOperator && u.OperatorType != "" {
		t := OperatorType(u.OperatorType)
		p.OperatorType = &t
	}
	return p
}

// Logout notifies the backend on a best-effort basis and always clears the
// session state, both in memory and in the store. It never fails: a logout
// must succeed locally regardless of backend reachability, so a failed
// server notification is only logged. Calling Logout on an anonymous
// session is a safe no-op that still clears storage.
func (s *Session) Logout(ctx context.Context) {
	// Best-effort server notification. With no derivable header (second
	// logout in a row) the gateway refuses before any network attempt.
	if err := s.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			s.log.Debug("skipping logout notification, no credentials")
		} else {
			s.log.Warn("logout notification failed", "err", err)
		}
	}

	if err := s.client.Store.Clear(); err != nil {
		s.log.Warn("failed to clear session storage", "err", err)
	}
	s.client.resetAuthorization()

	s.mu.Lock()
	s.principal = nil
	s.authenticated = false
	s.mu.Unlock()

	s.log.Info("logged out")
}

// CurrentUser returns a copy of the authenticated principal, or nil when
// the session is anonymous.
func (s *Session) CurrentUser() *Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return nil
	}
	p := *s.principal
	return &p
}

// IsAuthenticated reports whether the session is authenticated. It
// requires both the state flag and a non-nil principal, defending against
// the two falling out of sync.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated && s.principal != nil
}

// UpdateCurrentUser overwrites the in-memory principal and its persisted
// copy. It does not contact the backend; the caller is responsible for
// having already persisted the change server-side.
func (s *Session) UpdateCurrentUser(updated Principal) error {
	state, _, err := s.client.Store.Load()
	if err != nil {
		return err
	}
	state.Principal = &updated
	if err := s.client.Store.Save(state); err != nil {
		return err
	}

	s.mu.Lock()
	s.principal = &updated
	s.mu.Unlock()
	return nil
}

// Client returns the underlying gateway, for callers that need direct
// resource access alongside the session.
func (s *Session) Client() *Client { return s.client }
