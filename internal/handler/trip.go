package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/globetrotter/backend/internal/domain"
)

// tripResponse is the wire shape of a trip. Dates are date-only strings
// ("2006-01-02"); openapi_types.Date handles the (un)marshalling.
// ShareToken is only present on trips the owner fetches — the public shared
// view strips it.
type tripResponse struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	IsPublic    bool               `json:"is_public"`
	ShareToken  string             `json:"share_token,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type createTripRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	IsPublic    bool               `json:"is_public,omitempty"`
}

type updateTripRequest struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	StartDate   *openapi_types.Date `json:"start_date,omitempty"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
	IsPublic    *bool               `json:"is_public,omitempty"`
}

type shareResponse struct {
	ShareToken string `json:"share_token"`
	ShareURL   string `json:"share_url"`
}

type sharedTripResponse struct {
	Trip  tripResponse   `json:"trip"`
	Stops []stopResponse `json:"stops"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req createTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip, err := s.trips.Create(r.Context(), caller, domain.Trip{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondDataMessage(w, http.StatusCreated, tripToResponse(trip, true), "trip created successfully")
}

// ListTrips handles GET /api/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	trips, err := s.trips.ListMine(r.Context(), caller)
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondData(w, http.StatusOK, tripsToResponse(trips, true))
}

// ListPublicTrips handles GET /api/trips/public.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListPublicTrips(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	page := domain.NewPaginationParams(optionalIntQuery(r, "page"), optionalIntQuery(r, "limit"))
	trips, err := s.trips.ListPublic(r.Context(), caller, page)
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	// Other users' trips: share tokens are not the caller's to see.
	respondData(w, http.StatusOK, tripsToResponse(trips, false))
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), caller, id)
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondData(w, http.StatusOK, tripToResponse(trip, true))
}

// UpdateTrip handles PUT /api/trips/{id}. The body is a sparse patch —
// absent fields keep their stored values.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req updateTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := domain.TripPatch{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if req.StartDate != nil {
		patch.StartDate = &req.StartDate.Time
	}
	if req.EndDate != nil {
		patch.EndDate = &req.EndDate.Time
	}

	trip, err := s.trips.Update(r.Context(), caller, id, patch)
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondDataMessage(w, http.StatusOK, tripToResponse(trip, true), "trip updated successfully")
}

// DeleteTrip handles DELETE /api/trips/{id}. Stops, activities, and expenses
// cascade in the store.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), caller, id); err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondMessage(w, "trip deleted successfully")
}

// ShareTrip handles POST /api/trips/{id}/share. Reissuing replaces the
// previous token, revoking any link already in circulation.
func (s *Server) ShareTrip(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	link, err := s.trips.Share(r.Context(), caller, id)
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondDataMessage(w, http.StatusOK,
		shareResponse{ShareToken: link.Token, ShareURL: link.URL},
		"share link generated successfully")
}

// GetSharedTrip handles GET /api/trips/shared/{token} — public,
// unauthenticated. Resolves only on exact token match against a public trip.
func (s *Server) GetSharedTrip(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	shared, err := s.trips.ResolveShared(r.Context(), token)
	if err != nil {
		respondError(w, r, "shared trip", err)
		return
	}

	respondData(w, http.StatusOK, sharedTripResponse{
		Trip:  tripToResponse(shared.Trip, false),
		Stops: stopsToResponse(shared.Stops),
	})
}

// --- mapping helpers --------------------------------------------------------

// tripToResponse converts a domain.Trip to its wire shape. includeToken
// controls whether the share token is exposed; only owner-facing views get it.
func tripToResponse(t domain.Trip, includeToken bool) tripResponse {
	resp := tripResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		IsPublic:    t.IsPublic,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if includeToken {
		resp.ShareToken = t.ShareToken
	}
	return resp
}

func tripsToResponse(trips []domain.Trip, includeToken bool) []tripResponse {
	out := make([]tripResponse, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t, includeToken)
	}
	return out
}
