package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/globetrotter/backend/internal/auth"
	"github.com/globetrotter/backend/internal/domain"
	"github.com/globetrotter/backend/internal/repo"
)

// ExpenseService implements business logic for Expense operations and the
// per-trip budget summary. Ownership is resolved through the owning trip.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses}
}

// Create validates and persists an expense on a trip the caller owns.
func (s *ExpenseService) Create(ctx context.Context, caller auth.Identity, expense domain.Expense) (domain.Expense, error) {
	if err := s.authorizeTrip(ctx, caller, expense.TripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}
	if expense.Currency == "" {
		expense.Currency = "USD"
	}

	created, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return created, nil
}

// ListByTrip returns a trip's expenses, owner or admin only.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpenseService) ListByTrip(ctx context.Context, caller auth.Identity, tripID uuid.UUID) ([]domain.Expense, error) {
	if err := s.authorizeTrip(ctx, caller, tripID); err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}

	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// Update applies a sparse patch to an expense after an ownership check.
func (s *ExpenseService) Update(ctx context.Context, caller auth.Identity, expenseID uuid.UUID, patch domain.ExpensePatch) (domain.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	if err := s.authorizeTrip(ctx, caller, expense.TripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Expense{}, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}
	if patch.Amount != nil && *patch.Amount <= 0 {
		return domain.Expense{}, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return domain.Expense{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *patch.Category)
	}

	updated, err := s.expenses.Update(ctx, expenseID, patch)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an expense after an ownership check.
func (s *ExpenseService) Delete(ctx context.Context, caller auth.Identity, expenseID uuid.UUID) error {
	expense, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	if err := s.authorizeTrip(ctx, caller, expense.TripID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}

	if err := s.expenses.Delete(ctx, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// Budget aggregates the trip's expenses into a summary, owner or admin only.
func (s *ExpenseService) Budget(ctx context.Context, caller auth.Identity, tripID uuid.UUID) (domain.BudgetSummary, error) {
	if err := s.authorizeTrip(ctx, caller, tripID); err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.ExpenseService.Budget: %w", err)
	}

	summary, err := s.expenses.BudgetSummary(ctx, tripID)
	if err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.ExpenseService.Budget: %w", err)
	}
	if summary.Currency == "" {
		summary.Currency = "USD"
	}
	return summary, nil
}

// authorizeTrip resolves a trip and checks the caller against its owner.
func (s *ExpenseService) authorizeTrip(ctx context.Context, caller auth.Identity, tripID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	return auth.Authorize(caller, trip.UserID)
}

// validateExpense enforces creation rules: title, positive amount, known
// category, and a date.
func validateExpense(e domain.Expense) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, e.Category)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}
