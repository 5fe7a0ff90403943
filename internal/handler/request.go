package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globetrotter/backend/internal/auth"
	"github.com/globetrotter/backend/internal/middleware"
)

// callerIdentity returns the verified identity the bearer middleware placed
// in the request context. A false return on a protected route means the
// route was mounted without the middleware — a wiring bug, surfaced as 401
// rather than a panic.
func callerIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, apiResponse{Success: false, Error: "missing bearer token"})
	}
	return id, ok
}

// decodeBody decodes the JSON request body into dst. Unknown fields are
// rejected so client typos fail loudly instead of silently patching nothing.
// Returns false after writing a 400 when the body is unusable.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondBadRequest(w, "invalid request body")
		return false
	}
	return true
}

// uuidParam parses the named chi URL parameter as a UUID.
// Returns false after writing a 400 when it does not parse.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondBadRequest(w, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// intQuery parses an optional integer query parameter, returning fallback
// when absent or unparsable.
func intQuery(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// optionalIntQuery parses an optional integer query parameter into a pointer,
// nil when absent or unparsable. Used for pagination params.
func optionalIntQuery(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
