package zoosdk

import (
	"fmt"
	"net/http"
)

// ============================================================================
// Error Kinds
// ============================================================================

// ErrorKind classifies API failures into the categories the view layer
// cares about. Two *APIError values compare equal under errors.Is when
// their kinds match, so callers can branch on the predefined sentinels
// below without caring about the exact message or status code.
type ErrorKind string

const (
	// KindNotAuthenticated means no Authorization header was derivable;
	// the request was never sent.
	KindNotAuthenticated ErrorKind = "not_authenticated"

	// KindInvalidCredentials means the login endpoint rejected the
	// username/password pair.
	KindInvalidCredentials ErrorKind = "invalid_credentials"

	// KindUnauthorized means the stored credentials were rejected by a
	// downstream call (HTTP 401).
	KindUnauthorized ErrorKind = "unauthorized"

	// KindForbidden means the authenticated role lacks permission for
	// the action (HTTP 403).
	KindForbidden ErrorKind = "forbidden"

	// KindNotFound means the requested resource id does not exist
	// server-side (HTTP 404).
	KindNotFound ErrorKind = "not_found"

	// KindServer covers any other non-2xx response; the status code is
	// preserved for diagnostics.
	KindServer ErrorKind = "server_error"

	// KindTransport means the request never produced an HTTP response
	// (DNS failure, connection refused, timeout).
	KindTransport ErrorKind = "transport"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the single failure type produced by the SDK. StatusCode is
// zero for failures raised before or below the HTTP layer.
type APIError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// StatusCode is the HTTP status of the failing response, when one
	// was received.
	StatusCode int

	// Message is the human-readable, user-facing description.
	Message string

	// cause holds the underlying transport error, if any.
	cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *APIError of the same kind, so the sentinels below work
// with errors.Is regardless of status code or message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind
}

// Unwrap exposes the underlying transport error for diagnostics.
func (e *APIError) Unwrap() error { return e.cause }

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrNotAuthenticated is raised before any network attempt when
	// neither a cached auth header nor stored credentials exist.
	ErrNotAuthenticated = &APIError{
		Kind:    KindNotAuthenticated,
		Message: "not authenticated: log in first",
	}

	// ErrInvalidCredentials is returned when login is rejected. The
	// message deliberately never says which part was wrong.
	ErrInvalidCredentials = &APIError{
		Kind:    KindInvalidCredentials,
		Message: "incorrect username or password",
	}

	// ErrUnauthorized is returned when a downstream call answers 401.
	ErrUnauthorized = &APIError{
		Kind:       KindUnauthorized,
		StatusCode: http.StatusUnauthorized,
		Message:    "session expired: please log in again",
	}

	// ErrForbidden is returned when a downstream call answers 403.
	ErrForbidden = &APIError{
		Kind:       KindForbidden,
		StatusCode: http.StatusForbidden,
		Message:    "you do not have permission for this operation",
	}

	// ErrNotFound is returned when a downstream call answers 404.
	ErrNotFound = &APIError{
		Kind:       KindNotFound,
		StatusCode: http.StatusNotFound,
		Message:    "resource not found",
	}

	// ErrServer matches any KindServer failure under errors.Is.
	ErrServer = &APIError{
		Kind:    KindServer,
		Message: "server error",
	}

	// ErrTransport matches any KindTransport failure under errors.Is.
	ErrTransport = &APIError{
		Kind:    KindTransport,
		Message: "unable to reach the server",
	}
)

// statusError maps a non-2xx HTTP status to a typed failure. No retry is
// attempted at this layer; the caller decides on retry policy.
func statusError(status int) *APIError {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &APIError{
			Kind:       KindServer,
			StatusCode: status,
			Message:    fmt.Sprintf("server error: %s", http.StatusText(status)),
		}
	}
}

// transportError wraps a network-level failure, keeping the raw cause
// reachable via Unwrap without leaking it into the user-facing message.
func transportError(err error) *APIError {
	return &APIError{
		Kind:    KindTransport,
		Message: "unable to reach the server",
		cause:   err,
	}
}
