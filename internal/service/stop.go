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

// StopService implements business logic for Stop operations. It holds the
// trips repo as well because every stop operation walks the ownership chain
// back to the trip's owner before mutating anything.
type StopService struct {
	trips repo.TripRepo
	stops repo.StopRepo
}

// NewStopService constructs a StopService backed by the provided repos.
func NewStopService(trips repo.TripRepo, stops repo.StopRepo) *StopService {
	return &StopService{trips: trips, stops: stops}
}

// Create validates the stop, verifies the parent trip exists and is owned by
// the caller, then appends it. The repo assigns the next order index under a
// per-trip lock.
func (s *StopService) Create(ctx context.Context, caller auth.Identity, stop domain.Stop) (domain.Stop, error) {
	trip, err := s.trips.GetByID(ctx, stop.TripID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	if err := auth.Authorize(caller, trip.UserID); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	if err := validateStop(stop); err != nil {
		return domain.Stop{}, err
	}

	created, err := s.stops.Create(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	return created, nil
}

// ListByTrip returns a trip's stops in itinerary order, owner or admin only.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StopService) ListByTrip(ctx context.Context, caller auth.Identity, tripID uuid.UUID) ([]domain.Stop, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.ListByTrip: %w", err)
	}
	if err := auth.Authorize(caller, trip.UserID); err != nil {
		return nil, fmt.Errorf("service.StopService.ListByTrip: %w", err)
	}

	stops, err := s.stops.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.ListByTrip: %w", err)
	}
	if stops == nil {
		return []domain.Stop{}, nil
	}
	return stops, nil
}

// Update applies a sparse patch to a stop after walking stop → trip → owner.
func (s *StopService) Update(ctx context.Context, caller auth.Identity, stopID uuid.UUID, patch domain.StopPatch) (domain.Stop, error) {
	stop, err := s.stops.GetByID(ctx, stopID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	if err := s.authorizeTrip(ctx, caller, stop.TripID); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}

	merged := stop
	if patch.City != nil {
		merged.City = *patch.City
	}
	if patch.Country != nil {
		merged.Country = *patch.Country
	}
	if patch.StartDate != nil {
		merged.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		merged.EndDate = *patch.EndDate
	}
	if err := validateStop(merged); err != nil {
		return domain.Stop{}, err
	}

	updated, err := s.stops.Update(ctx, stopID, patch)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a stop after an ownership check. The repo renumbers the
// remaining stops so indices stay dense.
func (s *StopService) Delete(ctx context.Context, caller auth.Identity, stopID uuid.UUID) error {
	stop, err := s.stops.GetByID(ctx, stopID)
	if err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	if err := s.authorizeTrip(ctx, caller, stop.TripID); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}

	if err := s.stops.Delete(ctx, stop.TripID, stopID); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	return nil
}

// Reorder atomically rewrites the trip's stop ordering to match stopIDs.
// The submitted set must cover the trip's stops exactly; anything else is
// rejected whole (fail-closed) and the stored order is untouched.
func (s *StopService) Reorder(ctx context.Context, caller auth.Identity, tripID uuid.UUID, stopIDs []uuid.UUID) ([]domain.Stop, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.Reorder: %w", err)
	}
	if err := auth.Authorize(caller, trip.UserID); err != nil {
		return nil, fmt.Errorf("service.StopService.Reorder: %w", err)
	}

	stops, err := s.stops.Reorder(ctx, tripID, stopIDs)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.Reorder: %w", err)
	}
	if stops == nil {
		return []domain.Stop{}, nil
	}
	return stops, nil
}

// authorizeTrip resolves a trip and checks the caller against its owner.
func (s *StopService) authorizeTrip(ctx context.Context, caller auth.Identity, tripID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	return auth.Authorize(caller, trip.UserID)
}

// validateStop enforces rules common to Create and Update:
//   - City and country must be non-empty.
//   - StartDate must not be after EndDate.
func validateStop(stop domain.Stop) error {
	if strings.TrimSpace(stop.City) == "" {
		return fmt.Errorf("%w: city is required", domain.ErrValidation)
	}
	if strings.TrimSpace(stop.Country) == "" {
		return fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if stop.StartDate.IsZero() || stop.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if stop.EndDate.Before(stop.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
