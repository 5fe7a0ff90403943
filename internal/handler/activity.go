package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/globetrotter/backend/internal/domain"
)

type activityResponse struct {
	ID          uuid.UUID          `json:"id"`
	StopID      uuid.UUID          `json:"stop_id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time,omitempty"`
	DurationMin int                `json:"duration_minutes,omitempty"`
	Category    string             `json:"category,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type createActivityRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time,omitempty"`
	DurationMin int                `json:"duration_minutes,omitempty"`
	Category    string             `json:"category,omitempty"`
	Notes       string             `json:"notes,omitempty"`
}

type updateActivityRequest struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Date        *openapi_types.Date `json:"date,omitempty"`
	Time        *string             `json:"time,omitempty"`
	DurationMin *int                `json:"duration_minutes,omitempty"`
	Category    *string             `json:"category,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
}

// CreateActivity handles POST /api/stops/{id}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	stopID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req createActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	activity, err := s.activities.Create(r.Context(), caller, domain.Activity{
		StopID:      stopID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date.Time,
		Time:        req.Time,
		DurationMin: req.DurationMin,
		Category:    req.Category,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(w, r, "stop", err)
		return
	}

	respondDataMessage(w, http.StatusCreated, activityToResponse(activity), "activity added successfully")
}

// ListActivities handles GET /api/stops/{id}/activities, ordered by date then
// time of day.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	stopID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	activities, err := s.activities.ListByStop(r.Context(), caller, stopID)
	if err != nil {
		respondError(w, r, "stop", err)
		return
	}

	respondData(w, http.StatusOK, activitiesToResponse(activities))
}

// UpdateActivity handles PUT /api/activities/{id}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req updateActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := domain.ActivityPatch{
		Title:       req.Title,
		Description: req.Description,
		Time:        req.Time,
		DurationMin: req.DurationMin,
		Category:    req.Category,
		Notes:       req.Notes,
	}
	if req.Date != nil {
		patch.Date = &req.Date.Time
	}

	activity, err := s.activities.Update(r.Context(), caller, id, patch)
	if err != nil {
		respondError(w, r, "activity", err)
		return
	}

	respondDataMessage(w, http.StatusOK, activityToResponse(activity), "activity updated successfully")
}

// DeleteActivity handles DELETE /api/activities/{id}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := s.activities.Delete(r.Context(), caller, id); err != nil {
		respondError(w, r, "activity", err)
		return
	}

	respondMessage(w, "activity deleted successfully")
}

func activityToResponse(a domain.Activity) activityResponse {
	return activityResponse{
		ID:          a.ID,
		StopID:      a.StopID,
		Title:       a.Title,
		Description: a.Description,
		Date:        openapi_types.Date{Time: a.Date},
		Time:        a.Time,
		DurationMin: a.DurationMin,
		Category:    a.Category,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func activitiesToResponse(activities []domain.Activity) []activityResponse {
	out := make([]activityResponse, len(activities))
	for i, a := range activities {
		out[i] = activityToResponse(a)
	}
	return out
}
