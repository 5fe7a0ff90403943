package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/globetrotter/backend/internal/domain"
	"github.com/globetrotter/backend/internal/repo"
)

// DestinationService wraps the read-only destination reference queries.
// No ownership checks — destinations are public data.
type DestinationService struct {
	destinations repo.DestinationRepo
}

// NewDestinationService constructs a DestinationService backed by the provided repo.
func NewDestinationService(destinations repo.DestinationRepo) *DestinationService {
	return &DestinationService{destinations: destinations}
}

// Search runs the autocomplete query. The query must be non-empty; the limit
// is clamped to [1,100] with a default of 10.
func (s *DestinationService) Search(ctx context.Context, query string, limit int) ([]domain.Destination, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrValidation)
	}

	dests, err := s.destinations.Search(ctx, strings.TrimSpace(query), clampLimit(limit, 10))
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Search: %w", err)
	}
	if dests == nil {
		return []domain.Destination{}, nil
	}
	return dests, nil
}

// Popular returns the destinations with the most attractions.
func (s *DestinationService) Popular(ctx context.Context, limit int) ([]domain.Destination, error) {
	dests, err := s.destinations.Popular(ctx, clampLimit(limit, 20))
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Popular: %w", err)
	}
	if dests == nil {
		return []domain.Destination{}, nil
	}
	return dests, nil
}

// Continents returns the distinct continents present in the reference data.
func (s *DestinationService) Continents(ctx context.Context) ([]string, error) {
	continents, err := s.destinations.Continents(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.Continents: %w", err)
	}
	if continents == nil {
		return []string{}, nil
	}
	return continents, nil
}

// ByContinent returns all destinations on the given continent.
func (s *DestinationService) ByContinent(ctx context.Context, continent string) ([]domain.Destination, error) {
	if strings.TrimSpace(continent) == "" {
		return nil, fmt.Errorf("%w: continent is required", domain.ErrValidation)
	}

	dests, err := s.destinations.ByContinent(ctx, continent)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.ByContinent: %w", err)
	}
	if dests == nil {
		return []domain.Destination{}, nil
	}
	return dests, nil
}

// BudgetFriendly returns destinations whose average daily budget is within
// maxBudget. maxBudget must be positive.
func (s *DestinationService) BudgetFriendly(ctx context.Context, maxBudget float64, limit int) ([]domain.Destination, error) {
	if maxBudget <= 0 {
		return nil, fmt.Errorf("%w: maxBudget must be positive", domain.ErrValidation)
	}

	dests, err := s.destinations.BudgetFriendly(ctx, maxBudget, clampLimit(limit, 10))
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.BudgetFriendly: %w", err)
	}
	if dests == nil {
		return []domain.Destination{}, nil
	}
	return dests, nil
}

// ByLocation returns the destination matching city and country exactly.
func (s *DestinationService) ByLocation(ctx context.Context, city, country string) (domain.Destination, error) {
	dest, err := s.destinations.ByLocation(ctx, city, country)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.ByLocation: %w", err)
	}
	return dest, nil
}

// clampLimit applies the same bounds as pagination limits: default when
// unset, capped at 100.
func clampLimit(limit, fallback int) int {
	if limit < 1 {
		return fallback
	}
	if limit > 100 {
		return 100
	}
	return limit
}
