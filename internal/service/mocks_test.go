package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter/backend/internal/auth"
	"github.com/globetrotter/backend/internal/domain"
	"github.com/globetrotter/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; an unset field panics,
// which catches tests exercising paths they did not mean to.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockTripRepo struct {
	create          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByUser      func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	listPublic      func(ctx context.Context, excludeUserID uuid.UUID, page domain.PaginationParams) ([]domain.Trip, error)
	update          func(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete          func(ctx context.Context, id uuid.UUID) error
	setShareToken   func(ctx context.Context, id uuid.UUID, token string) (domain.Trip, error)
	getByShareToken func(ctx context.Context, token string) (domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) ListPublic(ctx context.Context, excludeUserID uuid.UUID, page domain.PaginationParams) ([]domain.Trip, error) {
	return m.listPublic(ctx, excludeUserID, page)
}
func (m *mockTripRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, id, patch)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) SetShareToken(ctx context.Context, id uuid.UUID, token string) (domain.Trip, error) {
	return m.setShareToken(ctx, id, token)
}
func (m *mockTripRepo) GetByShareToken(ctx context.Context, token string) (domain.Trip, error) {
	return m.getByShareToken(ctx, token)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockStopRepo struct {
	create     func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Stop, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	update     func(ctx context.Context, id uuid.UUID, patch domain.StopPatch) (domain.Stop, error)
	delete     func(ctx context.Context, tripID, stopID uuid.UUID) error
	reorder    func(ctx context.Context, tripID uuid.UUID, stopIDs []uuid.UUID) ([]domain.Stop, error)
}

func (m *mockStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.create(ctx, stop)
}
func (m *mockStopRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error) {
	return m.getByID(ctx, id)
}
func (m *mockStopRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockStopRepo) Update(ctx context.Context, id uuid.UUID, patch domain.StopPatch) (domain.Stop, error) {
	return m.update(ctx, id, patch)
}
func (m *mockStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, tripID, stopID)
}
func (m *mockStopRepo) Reorder(ctx context.Context, tripID uuid.UUID, stopIDs []uuid.UUID) ([]domain.Stop, error) {
	return m.reorder(ctx, tripID, stopIDs)
}

var _ repo.StopRepo = (*mockStopRepo)(nil)

type mockUserRepo struct {
	create     func(ctx context.Context, user domain.User) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
	update     func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	return m.update(ctx, id, patch)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockActivityRepo struct {
	create     func(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	listByStop func(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error)
	update     func(ctx context.Context, id uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	return m.create(ctx, activity)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityRepo) ListByStop(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error) {
	return m.listByStop(ctx, stopID)
}
func (m *mockActivityRepo) Update(ctx context.Context, id uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error) {
	return m.update(ctx, id, patch)
}
func (m *mockActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

type mockExpenseRepo struct {
	create        func(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Expense, error)
	listByTrip    func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	update        func(ctx context.Context, id uuid.UUID, patch domain.ExpensePatch) (domain.Expense, error)
	delete        func(ctx context.Context, id uuid.UUID) error
	budgetSummary func(ctx context.Context, tripID uuid.UUID) (domain.BudgetSummary, error)
}

func (m *mockExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	return m.create(ctx, expense)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, id)
}
func (m *mockExpenseRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockExpenseRepo) Update(ctx context.Context, id uuid.UUID, patch domain.ExpensePatch) (domain.Expense, error) {
	return m.update(ctx, id, patch)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockExpenseRepo) BudgetSummary(ctx context.Context, tripID uuid.UUID) (domain.BudgetSummary, error) {
	return m.budgetSummary(ctx, tripID)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

// ---- shared fixtures -------------------------------------------------------

// ownerID is the user who owns every fixture resource in these tests.
var ownerID = uuid.New()

func ownerIdentity() auth.Identity {
	return auth.Identity{UserID: ownerID, Email: "owner@example.com", Role: domain.RoleUser}
}

func strangerIdentity() auth.Identity {
	return auth.Identity{UserID: uuid.New(), Email: "stranger@example.com", Role: domain.RoleUser}
}

func adminIdentity() auth.Identity {
	return auth.Identity{UserID: uuid.New(), Email: "admin@example.com", Role: domain.RoleAdmin}
}

func validTrip() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		UserID:    ownerID,
		Title:     "Mediterranean Summer",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC),
	}
}

func validStop(tripID uuid.UUID) domain.Stop {
	return domain.Stop{
		ID:        uuid.New(),
		TripID:    tripID,
		City:      "Rome",
		Country:   "Italy",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC),
	}
}

// tripRepoReturning always resolves GetByID to the given trip.
func tripRepoReturning(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return trip, nil },
	}
}
