// Package handler implements the HTTP layer of the Globetrotter API.
// All handlers are methods on Server, split into resource-specific files
// (auth.go, trip.go, stop.go, ...) but sharing the same struct so they can
// access its dependencies. Handlers decode/encode JSON, resolve the caller's
// identity from the request context, and map service errors onto the
// response envelope — nothing more.
package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/globetrotter/backend/internal/auth"
	"github.com/globetrotter/backend/internal/domain"
	"github.com/globetrotter/backend/internal/service"
)

// UserServicer defines the account operations the auth handlers depend on.
// Defining interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type UserServicer interface {
	Register(ctx context.Context, email, password, name string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	UpdateProfile(ctx context.Context, callerID uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

// TripServicer defines the trip operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, caller auth.Identity, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, caller auth.Identity, id uuid.UUID) (domain.Trip, error)
	ListMine(ctx context.Context, caller auth.Identity) ([]domain.Trip, error)
	ListPublic(ctx context.Context, caller auth.Identity, page domain.PaginationParams) ([]domain.Trip, error)
	Update(ctx context.Context, caller auth.Identity, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
	Share(ctx context.Context, caller auth.Identity, id uuid.UUID) (service.ShareLink, error)
	ResolveShared(ctx context.Context, token string) (domain.SharedTrip, error)
}

// StopServicer defines the stop operations the stop handlers depend on.
type StopServicer interface {
	Create(ctx context.Context, caller auth.Identity, stop domain.Stop) (domain.Stop, error)
	ListByTrip(ctx context.Context, caller auth.Identity, tripID uuid.UUID) ([]domain.Stop, error)
	Update(ctx context.Context, caller auth.Identity, stopID uuid.UUID, patch domain.StopPatch) (domain.Stop, error)
	Delete(ctx context.Context, caller auth.Identity, stopID uuid.UUID) error
	Reorder(ctx context.Context, caller auth.Identity, tripID uuid.UUID, stopIDs []uuid.UUID) ([]domain.Stop, error)
}

// ActivityServicer defines the activity operations the activity handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, caller auth.Identity, activity domain.Activity) (domain.Activity, error)
	ListByStop(ctx context.Context, caller auth.Identity, stopID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, caller auth.Identity, activityID uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error)
	Delete(ctx context.Context, caller auth.Identity, activityID uuid.UUID) error
}

// ExpenseServicer defines the expense operations the expense handlers depend on.
type ExpenseServicer interface {
	Create(ctx context.Context, caller auth.Identity, expense domain.Expense) (domain.Expense, error)
	ListByTrip(ctx context.Context, caller auth.Identity, tripID uuid.UUID) ([]domain.Expense, error)
	Update(ctx context.Context, caller auth.Identity, expenseID uuid.UUID, patch domain.ExpensePatch) (domain.Expense, error)
	Delete(ctx context.Context, caller auth.Identity, expenseID uuid.UUID) error
	Budget(ctx context.Context, caller auth.Identity, tripID uuid.UUID) (domain.BudgetSummary, error)
}

// DestinationServicer defines the reference-data queries the destination
// handlers depend on.
type DestinationServicer interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Destination, error)
	Popular(ctx context.Context, limit int) ([]domain.Destination, error)
	Continents(ctx context.Context) ([]string, error)
	ByContinent(ctx context.Context, continent string) ([]domain.Destination, error)
	BudgetFriendly(ctx context.Context, maxBudget float64, limit int) ([]domain.Destination, error)
	ByLocation(ctx context.Context, city, country string) (domain.Destination, error)
}

// Server holds the handlers' dependencies. Construct one in main.go and
// mount its routes via NewRouter.
type Server struct {
	users        UserServicer
	trips        TripServicer
	stops        StopServicer
	activities   ActivityServicer
	expenses     ExpenseServicer
	destinations DestinationServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	users UserServicer,
	trips TripServicer,
	stops StopServicer,
	activities ActivityServicer,
	expenses ExpenseServicer,
	destinations DestinationServicer,
) *Server {
	return &Server{
		users:        users,
		trips:        trips,
		stops:        stops,
		activities:   activities,
		expenses:     expenses,
		destinations: destinations,
	}
}
