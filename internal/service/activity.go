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

// ActivityService implements business logic for Activity operations.
// Ownership is resolved by walking activity → stop → trip → user.
type ActivityService struct {
	trips      repo.TripRepo
	stops      repo.StopRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, stops repo.StopRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, stops: stops, activities: activities}
}

// Create validates and persists an activity under a stop the caller owns.
func (s *ActivityService) Create(ctx context.Context, caller auth.Identity, activity domain.Activity) (domain.Activity, error) {
	if err := s.authorizeStop(ctx, caller, activity.StopID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if err := validateActivity(activity); err != nil {
		return domain.Activity{}, err
	}

	created, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return created, nil
}

// ListByStop returns a stop's activities, owner or admin only.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ActivityService) ListByStop(ctx context.Context, caller auth.Identity, stopID uuid.UUID) ([]domain.Activity, error) {
	if err := s.authorizeStop(ctx, caller, stopID); err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByStop: %w", err)
	}

	activities, err := s.activities.ListByStop(ctx, stopID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByStop: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}

// Update applies a sparse patch to an activity after an ownership check.
func (s *ActivityService) Update(ctx context.Context, caller auth.Identity, activityID uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	if err := s.authorizeStop(ctx, caller, activity.StopID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Activity{}, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}

	updated, err := s.activities.Update(ctx, activityID, patch)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an activity after an ownership check.
func (s *ActivityService) Delete(ctx context.Context, caller auth.Identity, activityID uuid.UUID) error {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	if err := s.authorizeStop(ctx, caller, activity.StopID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}

	if err := s.activities.Delete(ctx, activityID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// authorizeStop walks stop → trip → owner and checks the caller against the
// owner.
func (s *ActivityService) authorizeStop(ctx context.Context, caller auth.Identity, stopID uuid.UUID) error {
	stop, err := s.stops.GetByID(ctx, stopID)
	if err != nil {
		return err
	}
	trip, err := s.trips.GetByID(ctx, stop.TripID)
	if err != nil {
		return err
	}
	return auth.Authorize(caller, trip.UserID)
}

// validateActivity enforces creation rules: title and date are required,
// duration cannot be negative.
func validateActivity(a domain.Activity) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if a.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if a.DurationMin < 0 {
		return fmt.Errorf("%w: duration cannot be negative", domain.ErrValidation)
	}
	return nil
}
