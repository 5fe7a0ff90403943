package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: an itinerary owned by exactly one user.
// UserID is immutable after creation. ShareToken is empty until the owner
// publishes the trip; it is cleared again when the trip is made private.
type Trip struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	IsPublic    bool
	ShareToken  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TripPatch carries the optional fields for a sparse trip update.
// Nil fields are left untouched. UserID is deliberately absent — ownership
// never changes.
type TripPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsPublic    *bool
}

// SharedTrip is the read-only public view resolved from a share token:
// the trip plus its stops in itinerary order.
type SharedTrip struct {
	Trip  Trip
	Stops []Stop
}
