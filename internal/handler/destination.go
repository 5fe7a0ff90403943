package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globetrotter/backend/internal/domain"
)

type destinationResponse struct {
	ID                 uuid.UUID `json:"id"`
	City               string    `json:"city"`
	Country            string    `json:"country"`
	CountryCode        string    `json:"country_code"`
	Continent          string    `json:"continent"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	Description        string    `json:"description,omitempty"`
	PopularAttractions []string  `json:"popular_attractions"`
	BestMonths         string    `json:"best_months,omitempty"`
	AvgBudgetPerDay    float64   `json:"avg_budget_per_day"`
	Timezone           string    `json:"timezone,omitempty"`
}

// SearchDestinations handles GET /api/destinations/search?q=...&limit=...
func (s *Server) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	dests, err := s.destinations.Search(r.Context(), query, intQuery(r, "limit", 0))
	if err != nil {
		respondError(w, r, "destination", err)
		return
	}

	respondData(w, http.StatusOK, destinationsToResponse(dests))
}

// PopularDestinations handles GET /api/destinations/popular?limit=...
func (s *Server) PopularDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := s.destinations.Popular(r.Context(), intQuery(r, "limit", 0))
	if err != nil {
		respondError(w, r, "destination", err)
		return
	}

	respondData(w, http.StatusOK, destinationsToResponse(dests))
}

// ListContinents handles GET /api/destinations/continents.
func (s *Server) ListContinents(w http.ResponseWriter, r *http.Request) {
	continents, err := s.destinations.Continents(r.Context())
	if err != nil {
		respondError(w, r, "destination", err)
		return
	}

	respondData(w, http.StatusOK, continents)
}

// DestinationsByContinent handles GET /api/destinations/continent/{continent}.
func (s *Server) DestinationsByContinent(w http.ResponseWriter, r *http.Request) {
	continent := chi.URLParam(r, "continent")

	dests, err := s.destinations.ByContinent(r.Context(), continent)
	if err != nil {
		respondError(w, r, "destination", err)
		return
	}

	respondData(w, http.StatusOK, destinationsToResponse(dests))
}

// BudgetFriendlyDestinations handles
// GET /api/destinations/budget-friendly?maxBudget=...&limit=...
// The snake_case max_budget spelling is accepted as an alias.
func (s *Server) BudgetFriendlyDestinations(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("maxBudget")
	if raw == "" {
		raw = r.URL.Query().Get("max_budget")
	}
	maxBudget, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondBadRequest(w, "invalid maxBudget")
		return
	}

	dests, err := s.destinations.BudgetFriendly(r.Context(), maxBudget, intQuery(r, "limit", 0))
	if err != nil {
		respondError(w, r, "destination", err)
		return
	}

	respondData(w, http.StatusOK, destinationsToResponse(dests))
}

// DestinationByLocation handles GET /api/destinations/{city}/{country},
// matching both segments exactly (case-insensitive).
func (s *Server) DestinationByLocation(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")
	country := chi.URLParam(r, "country")

	dest, err := s.destinations.ByLocation(r.Context(), city, country)
	if err != nil {
		respondError(w, r, "destination", err)
		return
	}

	respondData(w, http.StatusOK, destinationToResponse(dest))
}

func destinationToResponse(d domain.Destination) destinationResponse {
	attractions := d.PopularAttractions
	if attractions == nil {
		attractions = []string{}
	}
	return destinationResponse{
		ID:                 d.ID,
		City:               d.City,
		Country:            d.Country,
		CountryCode:        d.CountryCode,
		Continent:          d.Continent,
		Latitude:           d.Latitude,
		Longitude:          d.Longitude,
		Description:        d.Description,
		PopularAttractions: attractions,
		BestMonths:         d.BestMonths,
		AvgBudgetPerDay:    d.AvgBudgetPerDay,
		Timezone:           d.Timezone,
	}
}

func destinationsToResponse(dests []domain.Destination) []destinationResponse {
	out := make([]destinationResponse, len(dests))
	for i, d := range dests {
		out[i] = destinationToResponse(d)
	}
	return out
}
