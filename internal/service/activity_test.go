package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globetrotter/backend/internal/domain"
	"github.com/globetrotter/backend/internal/service"
)

func validActivity(stopID uuid.UUID) domain.Activity {
	return domain.Activity{
		StopID: stopID,
		Title:  "Colosseum tour",
		Date:   time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:   "10:00",
	}
}

// stopRepoReturning resolves GetByID to the given stop.
func stopRepoReturning(stop domain.Stop) *mockStopRepo {
	return &mockStopRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Stop, error) { return stop, nil },
	}
}

func TestActivityService_Create_Valid(t *testing.T) {
	trip := validTrip()
	stop := validStop(trip.ID)
	activities := &mockActivityRepo{
		create: func(_ context.Context, a domain.Activity) (domain.Activity, error) {
			a.ID = uuid.New()
			return a, nil
		},
	}
	svc := service.NewActivityService(tripRepoReturning(trip), stopRepoReturning(stop), activities)

	got, err := svc.Create(context.Background(), ownerIdentity(), validActivity(stop.ID))

	require.NoError(t, err)
	assert.Equal(t, "Colosseum tour", got.Title)
}

// Ownership is resolved by walking activity → stop → trip → owner; a stranger
// is stopped at the trip even though the stop exists.
func TestActivityService_Create_StrangerForbidden(t *testing.T) {
	trip := validTrip()
	stop := validStop(trip.ID)
	svc := service.NewActivityService(tripRepoReturning(trip), stopRepoReturning(stop), &mockActivityRepo{})

	_, err := svc.Create(context.Background(), strangerIdentity(), validActivity(stop.ID))

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestActivityService_Create_StopMissing(t *testing.T) {
	stops := &mockStopRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Stop, error) {
			return domain.Stop{}, domain.ErrNotFound
		},
	}
	svc := service.NewActivityService(&mockTripRepo{}, stops, &mockActivityRepo{})

	_, err := svc.Create(context.Background(), ownerIdentity(), validActivity(uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityService_Create_MissingTitle(t *testing.T) {
	trip := validTrip()
	stop := validStop(trip.ID)
	svc := service.NewActivityService(tripRepoReturning(trip), stopRepoReturning(stop), &mockActivityRepo{})

	activity := validActivity(stop.ID)
	activity.Title = " "

	_, err := svc.Create(context.Background(), ownerIdentity(), activity)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_Create_NegativeDuration(t *testing.T) {
	trip := validTrip()
	stop := validStop(trip.ID)
	svc := service.NewActivityService(tripRepoReturning(trip), stopRepoReturning(stop), &mockActivityRepo{})

	activity := validActivity(stop.ID)
	activity.DurationMin = -30

	_, err := svc.Create(context.Background(), ownerIdentity(), activity)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_Update_EmptyTitleRejected(t *testing.T) {
	trip := validTrip()
	stop := validStop(trip.ID)
	existing := validActivity(stop.ID)
	existing.ID = uuid.New()

	activities := &mockActivityRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Activity, error) { return existing, nil },
	}
	svc := service.NewActivityService(tripRepoReturning(trip), stopRepoReturning(stop), activities)

	empty := ""
	_, err := svc.Update(context.Background(), ownerIdentity(), existing.ID, domain.ActivityPatch{Title: &empty})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_Delete_StrangerForbidden(t *testing.T) {
	trip := validTrip()
	stop := validStop(trip.ID)
	existing := validActivity(stop.ID)
	existing.ID = uuid.New()

	activities := &mockActivityRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Activity, error) { return existing, nil },
	}
	svc := service.NewActivityService(tripRepoReturning(trip), stopRepoReturning(stop), activities)

	err := svc.Delete(context.Background(), strangerIdentity(), existing.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
