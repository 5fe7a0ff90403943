package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/globetrotter/backend/internal/auth"
	"github.com/globetrotter/backend/internal/domain"
	"github.com/globetrotter/backend/internal/handler"
	"github.com/globetrotter/backend/internal/middleware"
	"github.com/globetrotter/backend/internal/service"
)

// Test doubles for the handler's servicer interfaces. Each method is a
// function field — set only the ones your test needs.

type mockUserServicer struct {
	register      func(ctx context.Context, email, password, name string) (domain.User, string, error)
	login         func(ctx context.Context, email, password string) (domain.User, string, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	updateProfile func(ctx context.Context, callerID uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

func (m *mockUserServicer) Register(ctx context.Context, email, password, name string) (domain.User, string, error) {
	return m.register(ctx, email, password, name)
}
func (m *mockUserServicer) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	return m.login(ctx, email, password)
}
func (m *mockUserServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserServicer) UpdateProfile(ctx context.Context, callerID uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	return m.updateProfile(ctx, callerID, patch)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockTripServicer struct {
	create        func(ctx context.Context, caller auth.Identity, trip domain.Trip) (domain.Trip, error)
	getByID       func(ctx context.Context, caller auth.Identity, id uuid.UUID) (domain.Trip, error)
	listMine      func(ctx context.Context, caller auth.Identity) ([]domain.Trip, error)
	listPublic    func(ctx context.Context, caller auth.Identity, page domain.PaginationParams) ([]domain.Trip, error)
	update        func(ctx context.Context, caller auth.Identity, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete        func(ctx context.Context, caller auth.Identity, id uuid.UUID) error
	share         func(ctx context.Context, caller auth.Identity, id uuid.UUID) (service.ShareLink, error)
	resolveShared func(ctx context.Context, token string) (domain.SharedTrip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, caller auth.Identity, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, caller, trip)
}
func (m *mockTripServicer) GetByID(ctx context.Context, caller auth.Identity, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, caller, id)
}
func (m *mockTripServicer) ListMine(ctx context.Context, caller auth.Identity) ([]domain.Trip, error) {
	return m.listMine(ctx, caller)
}
func (m *mockTripServicer) ListPublic(ctx context.Context, caller auth.Identity, page domain.PaginationParams) ([]domain.Trip, error) {
	return m.listPublic(ctx, caller, page)
}
func (m *mockTripServicer) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, caller, id, patch)
}
func (m *mockTripServicer) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	return m.delete(ctx, caller, id)
}
func (m *mockTripServicer) Share(ctx context.Context, caller auth.Identity, id uuid.UUID) (service.ShareLink, error) {
	return m.share(ctx, caller, id)
}
func (m *mockTripServicer) ResolveShared(ctx context.Context, token string) (domain.SharedTrip, error) {
	return m.resolveShared(ctx, token)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockStopServicer struct {
	create     func(ctx context.Context, caller auth.Identity, stop domain.Stop) (domain.Stop, error)
	listByTrip func(ctx context.Context, caller auth.Identity, tripID uuid.UUID) ([]domain.Stop, error)
	update     func(ctx context.Context, caller auth.Identity, stopID uuid.UUID, patch domain.StopPatch) (domain.Stop, error)
	delete     func(ctx context.Context, caller auth.Identity, stopID uuid.UUID) error
	reorder    func(ctx context.Context, caller auth.Identity, tripID uuid.UUID, stopIDs []uuid.UUID) ([]domain.Stop, error)
}

func (m *mockStopServicer) Create(ctx context.Context, caller auth.Identity, stop domain.Stop) (domain.Stop, error) {
	return m.create(ctx, caller, stop)
}
func (m *mockStopServicer) ListByTrip(ctx context.Context, caller auth.Identity, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTrip(ctx, caller, tripID)
}
func (m *mockStopServicer) Update(ctx context.Context, caller auth.Identity, stopID uuid.UUID, patch domain.StopPatch) (domain.Stop, error) {
	return m.update(ctx, caller, stopID, patch)
}
func (m *mockStopServicer) Delete(ctx context.Context, caller auth.Identity, stopID uuid.UUID) error {
	return m.delete(ctx, caller, stopID)
}
func (m *mockStopServicer) Reorder(ctx context.Context, caller auth.Identity, tripID uuid.UUID, stopIDs []uuid.UUID) ([]domain.Stop, error) {
	return m.reorder(ctx, caller, tripID, stopIDs)
}

var _ handler.StopServicer = (*mockStopServicer)(nil)

type mockActivityServicer struct {
	create     func(ctx context.Context, caller auth.Identity, activity domain.Activity) (domain.Activity, error)
	listByStop func(ctx context.Context, caller auth.Identity, stopID uuid.UUID) ([]domain.Activity, error)
	update     func(ctx context.Context, caller auth.Identity, activityID uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error)
	delete     func(ctx context.Context, caller auth.Identity, activityID uuid.UUID) error
}

func (m *mockActivityServicer) Create(ctx context.Context, caller auth.Identity, activity domain.Activity) (domain.Activity, error) {
	return m.create(ctx, caller, activity)
}
func (m *mockActivityServicer) ListByStop(ctx context.Context, caller auth.Identity, stopID uuid.UUID) ([]domain.Activity, error) {
	return m.listByStop(ctx, caller, stopID)
}
func (m *mockActivityServicer) Update(ctx context.Context, caller auth.Identity, activityID uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error) {
	return m.update(ctx, caller, activityID, patch)
}
func (m *mockActivityServicer) Delete(ctx context.Context, caller auth.Identity, activityID uuid.UUID) error {
	return m.delete(ctx, caller, activityID)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

type mockExpenseServicer struct {
	create     func(ctx context.Context, caller auth.Identity, expense domain.Expense) (domain.Expense, error)
	listByTrip func(ctx context.Context, caller auth.Identity, tripID uuid.UUID) ([]domain.Expense, error)
	update     func(ctx context.Context, caller auth.Identity, expenseID uuid.UUID, patch domain.ExpensePatch) (domain.Expense, error)
	delete     func(ctx context.Context, caller auth.Identity, expenseID uuid.UUID) error
	budget     func(ctx context.Context, caller auth.Identity, tripID uuid.UUID) (domain.BudgetSummary, error)
}

func (m *mockExpenseServicer) Create(ctx context.Context, caller auth.Identity, expense domain.Expense) (domain.Expense, error) {
	return m.create(ctx, caller, expense)
}
func (m *mockExpenseServicer) ListByTrip(ctx context.Context, caller auth.Identity, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTrip(ctx, caller, tripID)
}
func (m *mockExpenseServicer) Update(ctx context.Context, caller auth.Identity, expenseID uuid.UUID, patch domain.ExpensePatch) (domain.Expense, error) {
	return m.update(ctx, caller, expenseID, patch)
}
func (m *mockExpenseServicer) Delete(ctx context.Context, caller auth.Identity, expenseID uuid.UUID) error {
	return m.delete(ctx, caller, expenseID)
}
func (m *mockExpenseServicer) Budget(ctx context.Context, caller auth.Identity, tripID uuid.UUID) (domain.BudgetSummary, error) {
	return m.budget(ctx, caller, tripID)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

type mockDestinationServicer struct {
	search         func(ctx context.Context, query string, limit int) ([]domain.Destination, error)
	popular        func(ctx context.Context, limit int) ([]domain.Destination, error)
	continents     func(ctx context.Context) ([]string, error)
	byContinent    func(ctx context.Context, continent string) ([]domain.Destination, error)
	budgetFriendly func(ctx context.Context, maxBudget float64, limit int) ([]domain.Destination, error)
	byLocation     func(ctx context.Context, city, country string) (domain.Destination, error)
}

func (m *mockDestinationServicer) Search(ctx context.Context, query string, limit int) ([]domain.Destination, error) {
	return m.search(ctx, query, limit)
}
func (m *mockDestinationServicer) Popular(ctx context.Context, limit int) ([]domain.Destination, error) {
	return m.popular(ctx, limit)
}
func (m *mockDestinationServicer) Continents(ctx context.Context) ([]string, error) {
	return m.continents(ctx)
}
func (m *mockDestinationServicer) ByContinent(ctx context.Context, continent string) ([]domain.Destination, error) {
	return m.byContinent(ctx, continent)
}
func (m *mockDestinationServicer) BudgetFriendly(ctx context.Context, maxBudget float64, limit int) ([]domain.Destination, error) {
	return m.budgetFriendly(ctx, maxBudget, limit)
}
func (m *mockDestinationServicer) ByLocation(ctx context.Context, city, country string) (domain.Destination, error) {
	return m.byLocation(ctx, city, country)
}

var _ handler.DestinationServicer = (*mockDestinationServicer)(nil)

// ---- router wiring ---------------------------------------------------------

// testMocks bundles one mock per servicer so individual tests can populate
// only the mock they exercise.
type testMocks struct {
	users        *mockUserServicer
	trips        *mockTripServicer
	stops        *mockStopServicer
	activities   *mockActivityServicer
	expenses     *mockExpenseServicer
	destinations *mockDestinationServicer
}

// tokenTTL is generous so tokens never expire mid-test.
var testTokens = auth.NewTokenManager("handler-test-secret", time.Hour)

// newTestRouter mounts the full route table over the mocks with the real
// bearer middleware, mirroring how main.go wires it in production.
func newTestRouter(m testMocks) http.Handler {
	if m.users == nil {
		m.users = &mockUserServicer{}
	}
	if m.trips == nil {
		m.trips = &mockTripServicer{}
	}
	if m.stops == nil {
		m.stops = &mockStopServicer{}
	}
	if m.activities == nil {
		m.activities = &mockActivityServicer{}
	}
	if m.expenses == nil {
		m.expenses = &mockExpenseServicer{}
	}
	if m.destinations == nil {
		m.destinations = &mockDestinationServicer{}
	}

	srv := handler.NewServer(m.users, m.trips, m.stops, m.activities, m.expenses, m.destinations)
	return handler.NewRouter(srv, middleware.NewBearerAuth(testTokens))
}

// bearerFor issues a real signed token for the given identity.
func bearerFor(t *testing.T, id auth.Identity) string {
	t.Helper()
	token, err := testTokens.Issue(domain.User{ID: id.UserID, Email: id.Email, Role: id.Role})
	require.NoError(t, err)
	return "Bearer " + token
}

func userIdentity() auth.Identity {
	return auth.Identity{UserID: uuid.New(), Email: "traveler@example.com", Role: domain.RoleUser}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// envelope mirrors the API's response wrapper for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}
