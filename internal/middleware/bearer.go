package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/globetrotter/backend/internal/auth"
)

type contextKey int

const identityKey contextKey = iota

// TokenVerifier is the single capability the bearer middleware needs.
// *auth.TokenManager satisfies it; tests can substitute a stub.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// NewBearerAuth returns a middleware that requires a valid
// "Authorization: Bearer <token>" header. On success the verified identity is
// placed in the request context for handlers to read via IdentityFromContext.
// A missing or invalid token terminates the request with 401 — never 403;
// forbidden is an ownership decision made later, with an identity in hand.
func NewBearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "missing bearer token")
				return
			}

			identity, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the identity stored by NewBearerAuth.
// The second return is false on routes that were not behind the middleware.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// unauthorized writes a 401 in the API's standard envelope. The middleware
// cannot reuse the handler package's helpers without an import cycle, so the
// envelope is spelled out here.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
