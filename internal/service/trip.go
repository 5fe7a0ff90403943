package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/globetrotter/backend/internal/auth"
	"github.com/globetrotter/backend/internal/domain"
	"github.com/globetrotter/backend/internal/repo"
)

// ShareLink is the result of publishing a trip: the raw token and the full
// URL a user can hand out.
type ShareLink struct {
	Token string
	URL   string
}

// TripService implements business logic for Trip operations, including the
// share-link lifecycle.
type TripService struct {
	trips        repo.TripRepo
	stops        repo.StopRepo
	shareBaseURL string
}

// NewTripService constructs a TripService. shareBaseURL is the client origin
// prefixed to share tokens when building shareable URLs.
func NewTripService(trips repo.TripRepo, stops repo.StopRepo, shareBaseURL string) *TripService {
	return &TripService{trips: trips, stops: stops, shareBaseURL: strings.TrimRight(shareBaseURL, "/")}
}

// Create validates and persists a new trip owned by the caller.
func (s *TripService) Create(ctx context.Context, caller auth.Identity, trip domain.Trip) (domain.Trip, error) {
	trip.UserID = caller.UserID
	if err := validateTrip(trip.Title, trip); err != nil {
		return domain.Trip{}, err
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a trip the caller is allowed to see: the owner or an admin.
// Existence is established before ownership, so a non-owner gets Forbidden,
// not NotFound.
func (s *TripService) GetByID(ctx context.Context, caller auth.Identity, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if err := auth.Authorize(caller, trip.UserID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListMine returns all trips owned by the caller.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListMine(ctx context.Context, caller auth.Identity) ([]domain.Trip, error) {
	trips, err := s.trips.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListMine: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPublic returns other users' public trips for discovery, paged.
func (s *TripService) ListPublic(ctx context.Context, caller auth.Identity, page domain.PaginationParams) ([]domain.Trip, error) {
	trips, err := s.trips.ListPublic(ctx, caller.UserID, page)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListPublic: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update applies a sparse patch to a trip after an ownership check.
// Date-order validation runs against the merged view: a patch that moves
// either endpoint past the other is rejected.
func (s *TripService) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := auth.Authorize(caller, trip.UserID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	merged := trip
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.StartDate != nil {
		merged.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		merged.EndDate = *patch.EndDate
	}
	if err := validateTrip(merged.Title, merged); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, id, patch)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip after an ownership check. Stops, activities, and
// expenses cascade in the store.
func (s *TripService) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := auth.Authorize(caller, trip.UserID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Share mints a fresh share token for the trip and flips it public.
// Reissuing overwrites the previous token — revoke-and-reissue, not additive.
func (s *TripService) Share(ctx context.Context, caller auth.Identity, id uuid.UUID) (ShareLink, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return ShareLink{}, fmt.Errorf("service.TripService.Share: %w", err)
	}
	if err := auth.Authorize(caller, trip.UserID); err != nil {
		return ShareLink{}, fmt.Errorf("service.TripService.Share: %w", err)
	}

	token, err := newShareToken()
	if err != nil {
		return ShareLink{}, fmt.Errorf("service.TripService.Share: %w", err)
	}

	if _, err := s.trips.SetShareToken(ctx, id, token); err != nil {
		return ShareLink{}, fmt.Errorf("service.TripService.Share: %w", err)
	}

	return ShareLink{
		Token: token,
		URL:   fmt.Sprintf("%s/share/%s", s.shareBaseURL, token),
	}, nil
}

// ResolveShared returns the public view of a trip by exact token match:
// the trip plus its stops in itinerary order. Unknown tokens and tokens of
// since-privatized trips both resolve to domain.ErrNotFound.
func (s *TripService) ResolveShared(ctx context.Context, token string) (domain.SharedTrip, error) {
	if token == "" {
		return domain.SharedTrip{}, fmt.Errorf("service.TripService.ResolveShared: %w", domain.ErrNotFound)
	}

	trip, err := s.trips.GetByShareToken(ctx, token)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("service.TripService.ResolveShared: %w", err)
	}

	stops, err := s.stops.ListByTrip(ctx, trip.ID)
	if err != nil {
		return domain.SharedTrip{}, fmt.Errorf("service.TripService.ResolveShared: %w", err)
	}
	if stops == nil {
		stops = []domain.Stop{}
	}
	return domain.SharedTrip{Trip: trip, Stops: stops}, nil
}

// newShareToken returns 128 bits from crypto/rand in URL-safe base64 —
// 22 characters, unguessable, no padding.
func newShareToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// validateTrip enforces rules common to Create and Update:
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - StartDate must not be after EndDate.
func validateTrip(title string, trip domain.Trip) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
