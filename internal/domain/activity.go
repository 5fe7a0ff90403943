package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is something planned at a stop: a museum visit, a dinner booking.
// Time is a wall-clock "15:04" string (or empty), kept separate from Date
// because many activities are date-only. DurationMin is minutes, zero when
// unknown.
type Activity struct {
	ID          uuid.UUID
	StopID      uuid.UUID
	Title       string
	Description string
	Date        time.Time
	Time        string
	DurationMin int
	Category    string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ActivityPatch carries the optional fields for a sparse activity update.
type ActivityPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Time        *string
	DurationMin *int
	Category    *string
	Notes       *string
}
