package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/globetrotter/backend/internal/domain"
)

type expenseResponse struct {
	ID         uuid.UUID          `json:"id"`
	TripID     uuid.UUID          `json:"trip_id"`
	StopID     *uuid.UUID         `json:"stop_id,omitempty"`
	ActivityID *uuid.UUID         `json:"activity_id,omitempty"`
	Title      string             `json:"title"`
	Amount     float64            `json:"amount"`
	Currency   string             `json:"currency"`
	Category   string             `json:"category"`
	Date       openapi_types.Date `json:"date"`
	Notes      string             `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type createExpenseRequest struct {
	StopID     *uuid.UUID         `json:"stop_id,omitempty"`
	ActivityID *uuid.UUID         `json:"activity_id,omitempty"`
	Title      string             `json:"title"`
	Amount     float64            `json:"amount"`
	Currency   string             `json:"currency,omitempty"`
	Category   string             `json:"category"`
	Date       openapi_types.Date `json:"date"`
	Notes      string             `json:"notes,omitempty"`
}

type updateExpenseRequest struct {
	Title    *string             `json:"title,omitempty"`
	Amount   *float64            `json:"amount,omitempty"`
	Currency *string             `json:"currency,omitempty"`
	Category *string             `json:"category,omitempty"`
	Date     *openapi_types.Date `json:"date,omitempty"`
	Notes    *string             `json:"notes,omitempty"`
}

type budgetResponse struct {
	Total      float64            `json:"total"`
	Currency   string             `json:"currency"`
	ByCategory map[string]float64 `json:"by_category"`
}

// CreateExpense handles POST /api/trips/{id}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	tripID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	expense, err := s.expenses.Create(r.Context(), caller, domain.Expense{
		TripID:     tripID,
		StopID:     req.StopID,
		ActivityID: req.ActivityID,
		Title:      req.Title,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Category:   domain.ExpenseCategory(req.Category),
		Date:       req.Date.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondDataMessage(w, http.StatusCreated, expenseToResponse(expense), "expense added successfully")
}

// ListExpenses handles GET /api/trips/{id}/expenses, newest first.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	tripID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	expenses, err := s.expenses.ListByTrip(r.Context(), caller, tripID)
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	respondData(w, http.StatusOK, expensesToResponse(expenses))
}

// UpdateExpense handles PUT /api/expenses/{id}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req updateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := domain.ExpensePatch{
		Title:    req.Title,
		Amount:   req.Amount,
		Currency: req.Currency,
		Notes:    req.Notes,
	}
	if req.Category != nil {
		c := domain.ExpenseCategory(*req.Category)
		patch.Category = &c
	}
	if req.Date != nil {
		patch.Date = &req.Date.Time
	}

	expense, err := s.expenses.Update(r.Context(), caller, id, patch)
	if err != nil {
		respondError(w, r, "expense", err)
		return
	}

	respondDataMessage(w, http.StatusOK, expenseToResponse(expense), "expense updated successfully")
}

// DeleteExpense handles DELETE /api/expenses/{id}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := s.expenses.Delete(r.Context(), caller, id); err != nil {
		respondError(w, r, "expense", err)
		return
	}

	respondMessage(w, "expense deleted successfully")
}

// GetBudget handles GET /api/trips/{id}/budget: the trip's total spend plus a
// per-category breakdown.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	tripID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	summary, err := s.expenses.Budget(r.Context(), caller, tripID)
	if err != nil {
		respondError(w, r, "trip", err)
		return
	}

	byCategory := make(map[string]float64, len(summary.ByCategory))
	for cat, amount := range summary.ByCategory {
		byCategory[string(cat)] = amount
	}

	respondData(w, http.StatusOK, budgetResponse{
		Total:      summary.Total,
		Currency:   summary.Currency,
		ByCategory: byCategory,
	})
}

func expenseToResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:         e.ID,
		TripID:     e.TripID,
		StopID:     e.StopID,
		ActivityID: e.ActivityID,
		Title:      e.Title,
		Amount:     e.Amount,
		Currency:   e.Currency,
		Category:   string(e.Category),
		Date:       openapi_types.Date{Time: e.Date},
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func expensesToResponse(expenses []domain.Expense) []expenseResponse {
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToResponse(e)
	}
	return out
}
