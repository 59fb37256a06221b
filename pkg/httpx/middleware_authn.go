package httpx

import (
	"context"
	"net/http"

	"github.com/finconsgroup/zooadmin/pkg/slogx"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

// Identity is the authenticated caller as resolved by an IdentityVerifier.
type Identity struct {
	ID           int64
	Username     string
	Role         zoosdk.Role
	OperatorType *zoosdk.OperatorType
}

// IdentityVerifier checks a Basic auth username/password pair and resolves
// the caller's identity.
type IdentityVerifier interface {
	VerifyBasic(ctx context.Context, username, password string) (Identity, error)
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// IdentityFromCtx returns the authenticated identity attached by
// AuthnMiddleware.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}

// AuthnMiddleware enforces HTTP Basic authentication. Requests without
// valid credentials get a 401 with a Basic challenge; authenticated
// requests carry their Identity in the context.
func AuthnMiddleware(v IdentityVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			username, password, ok := r.BasicAuth()
			if !ok {
				writeBasicChallenge(w)
				return
			}

			identity, err := v.VerifyBasic(ctx, username, password)
			if err != nil {
				log.Warn("basic auth rejected", "username", username)
				writeBasicChallenge(w)
				return
			}

			ctx = context.WithValue(ctx, ctxKeyIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows only callers holding one of the listed roles,
// mirroring the backend's per-endpoint role annotations.
func RequireRole(roles ...zoosdk.Role) Middleware {
	allowed := make(map[zoosdk.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromCtx(r.Context())
			if !ok {
				writeBasicChallenge(w)
				return
			}
			if _, ok := allowed[identity.Role]; !ok {
				WriteError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeBasicChallenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="zooadmin"`)
	WriteError(w, http.StatusUnauthorized, "authentication required")
}
