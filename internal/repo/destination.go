package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globetrotter/backend/internal/domain"
)

// DestinationRepo exposes read-only queries over the seeded destinations
// reference table. The API never writes destinations.
type DestinationRepo interface {
	// Search matches city or country by case-insensitive substring, exact
	// city matches ranked first.
	Search(ctx context.Context, query string, limit int) ([]domain.Destination, error)

	// Popular returns destinations with the most listed attractions.
	Popular(ctx context.Context, limit int) ([]domain.Destination, error)

	// Continents returns the distinct continents, alphabetically.
	Continents(ctx context.Context) ([]string, error)

	// ByContinent returns all destinations on a continent, ordered by
	// country then city.
	ByContinent(ctx context.Context, continent string) ([]domain.Destination, error)

	// BudgetFriendly returns destinations whose average daily budget is at
	// most maxBudget, cheapest first.
	BudgetFriendly(ctx context.Context, maxBudget float64, limit int) ([]domain.Destination, error)

	// ByLocation returns the destination matching city and country exactly
	// (case-insensitive). Returns domain.ErrNotFound when absent.
	ByLocation(ctx context.Context, city, country string) (domain.Destination, error)
}

type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `id, city, country, country_code, continent,
	latitude, longitude, description, popular_attractions, best_months,
	avg_budget_per_day, timezone`

func (r *pgDestinationRepo) Search(ctx context.Context, query string, limit int) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE LOWER(city) LIKE LOWER(@pattern)
		   OR LOWER(country) LIKE LOWER(@pattern)
		   OR LOWER(city || ', ' || country) LIKE LOWER(@pattern)
		ORDER BY
			CASE
				WHEN LOWER(city) = LOWER(@query) THEN 1
				WHEN LOWER(city) LIKE LOWER(@pattern) THEN 2
				ELSE 3
			END,
			city
		LIMIT @limit`

	args := pgx.NamedArgs{
		"pattern": "%" + query + "%",
		"query":   query,
		"limit":   limit,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.Search: %w", classify(err))
	}
	defer rows.Close()

	return collectDestinations(rows, "repo.DestinationRepo.Search")
}

func (r *pgDestinationRepo) Popular(ctx context.Context, limit int) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		ORDER BY COALESCE(array_length(popular_attractions, 1), 0) DESC, city
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.Popular: %w", classify(err))
	}
	defer rows.Close()

	return collectDestinations(rows, "repo.DestinationRepo.Popular")
}

func (r *pgDestinationRepo) Continents(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT continent FROM destinations ORDER BY continent`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.Continents: %w", classify(err))
	}
	defer rows.Close()

	var continents []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.Continents: scan: %w", err)
		}
		continents = append(continents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.Continents: rows: %w", classify(err))
	}
	return continents, nil
}

func (r *pgDestinationRepo) ByContinent(ctx context.Context, continent string) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE continent = @continent
		ORDER BY country, city`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"continent": continent})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ByContinent: %w", classify(err))
	}
	defer rows.Close()

	return collectDestinations(rows, "repo.DestinationRepo.ByContinent")
}

func (r *pgDestinationRepo) BudgetFriendly(ctx context.Context, maxBudget float64, limit int) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE avg_budget_per_day <= @max_budget
		ORDER BY avg_budget_per_day ASC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"max_budget": maxBudget, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.BudgetFriendly: %w", classify(err))
	}
	defer rows.Close()

	return collectDestinations(rows, "repo.DestinationRepo.BudgetFriendly")
}

func (r *pgDestinationRepo) ByLocation(ctx context.Context, city, country string) (domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE LOWER(city) = LOWER(@city) AND LOWER(country) = LOWER(@country)`

	result, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"city": city, "country": country}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.ByLocation: %w", classify(err))
	}
	return result, nil
}

// collectDestinations drains rows into a slice, wrapping errors with op.
func collectDestinations(rows pgx.Rows, op string) ([]domain.Destination, error) {
	var dests []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, classify(err))
	}
	return dests, nil
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d  domain.Destination
		id pgtype.UUID
	)

	err := s.Scan(&id, &d.City, &d.Country, &d.CountryCode, &d.Continent,
		&d.Latitude, &d.Longitude, &d.Description, &d.PopularAttractions,
		&d.BestMonths, &d.AvgBudgetPerDay, &d.Timezone)
	if err != nil {
		return domain.Destination{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
