package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stop is an ordered waypoint (city/date-range) within a trip.
//
// OrderIndex is a zero-based position unique within the trip. For a trip with
// n stops the set of indices is exactly {0..n-1}; every write path (append,
// reorder, delete) preserves that density.
type Stop struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	City       string
	Country    string
	OrderIndex int
	StartDate  time.Time
	EndDate    time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StopPatch carries the optional fields for a sparse stop update.
// OrderIndex is deliberately absent — positions change only through Reorder.
type StopPatch struct {
	City      *string
	Country   *string
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
}
