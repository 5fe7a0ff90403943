package handler

import (
	"net/http"
	"time"

	"github.com/globetrotter/backend/spec"
)

// Health handles GET /health. It reports liveness only — no dependency
// checks — so orchestrators can distinguish a hung process from a slow one.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// OpenAPI handles GET /openapi.yaml, serving the spec embedded in the binary
// so the document and the running code are always in sync.
func (s *Server) OpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
