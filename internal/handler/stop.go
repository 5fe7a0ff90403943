package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/globetrotter/backend/internal/domain"
)

type stopResponse struct {
	ID         uuid.UUID          `json:"id"`
	TripID     uuid.UUID          `json:"trip_id"`
	City       string             `json:"city"`
	Country    string             `json:"country"`
	OrderIndex int                `json:"order_index"`
	StartDate  openapi_types.Date `json:"start_date"`
	EndDate    openapi_types.Date `json:"end_date"`
	Notes      string             `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// createStopRequest has no order_index field: new stops always append, and
// positions change only through the reorder endpoint.
type createStopRequest struct {
	City      string             `json:"city"`
	Country   string             `json:"country"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Notes     string             `json:"notes,omitempty"`
}

type updateStopRequest struct {
	City      *string             `json:"city,omitempty"`
	Country   *string             `json:"country,omitempty"`
	StartDate *openapi_types.Date `json:"start_date,omitempty"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
}

// reorderStopsRequest accepts both spellings of its fields: the documented
// camelCase names and the snake_case ones the rest of the API uses.
type reorderStopsRequest struct {
	TripID       uuid.UUID   `json:"tripId"`
	StopIDs      []uuid.UUID `json:"stopIds"`
	TripIDSnake  uuid.UUID   `json:"trip_id"`
	StopIDsSnake []uuid.UUID `json:"stop_ids"`
}

func (r *reorderStopsRequest) normalize() {
	if r.TripID == uuid.Nil {
		r.TripID = r.TripIDSnake
	}
	if len(r.StopIDs) == 0 {
		r.StopIDs = r.StopIDsSnake
	}
}

// CreateStop handles POST /api/trips/{id}/stops. The new stop is appended at
// the end of the itinerary.
func (s *Server) CreateStop(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	tripID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req createStopRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stop, err := s.stops.Create(r.Context(), caller, domain.Stop{
		TripID:    tripID,
		City:      req.City,
		Country:   req.Country,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondDataMessage(w, http.StatusCreated, stopToResponse(stop), "stop added successfully")
}

// ListStops handles GET /api/trips/{id}/stops, returning stops in itinerary
// order.
func (s *Server) ListStops(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	tripID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	stops, err := s.stops.ListByTrip(r.Context(), caller, tripID)
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondData(w, http.StatusOK, stopsToResponse(stops))
}

// UpdateStop handles PUT /api/stops/{id}. The body is a sparse patch; the
// stop's position is not patchable here.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req updateStopRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := domain.StopPatch{
		City:    req.City,
		Country: req.Country,
		Notes:   req.Notes,
	}
	if req.StartDate != nil {
		patch.StartDate = &req.StartDate.Time
	}
	if req.EndDate != nil {
		patch.EndDate = &req.EndDate.Time
	}

	stop, err := s.stops.Update(r.Context(), caller, id, patch)
	if err != nil {
		respondError(w, r, "stop", err)
		return
	}

	respondDataMessage(w, http.StatusOK, stopToResponse(stop), "stop updated successfully")
}

// DeleteStop handles DELETE /api/stops/{id}. Remaining stops are renumbered
// so their indices stay dense.
func (s *Server) DeleteStop(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := s.stops.Delete(r.Context(), caller, id); err != nil {
		respondError(w, r, "stop", err)
		return
	}

	respondMessage(w, "stop deleted successfully")
}

// ReorderStops handles PUT /api/stops/reorder. The submitted stop ids must be
// exactly the trip's stops — no omissions, no strangers, no duplicates — or
// the whole request is rejected and the stored order stands.
func (s *Server) ReorderStops(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req reorderStopsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.normalize()
	if req.TripID == uuid.Nil {
		respondBadRequest(w, "tripId is required")
		return
	}

	stops, err := s.stops.Reorder(r.Context(), caller, req.TripID, req.StopIDs)
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondDataMessage(w, http.StatusOK, stopsToResponse(stops), "stops reordered successfully")
}

func stopToResponse(st domain.Stop) stopResponse {
	return stopResponse{
		ID:         st.ID,
		TripID:     st.TripID,
		City:       st.City,
		Country:    st.Country,
		OrderIndex: st.OrderIndex,
		StartDate:  openapi_types.Date{Time: st.StartDate},
		EndDate:    openapi_types.Date{Time: st.EndDate},
		Notes:      st.Notes,
		CreatedAt:  st.CreatedAt,
		UpdatedAt:  st.UpdatedAt,
	}
}

func stopsToResponse(stops []domain.Stop) []stopResponse {
	out := make([]stopResponse, len(stops))
	for i, st := range stops {
		out[i] = stopToResponse(st)
	}
	return out
}
