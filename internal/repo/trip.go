package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globetrotter/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns all trips owned by userID, ordered by start_date
	// descending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// ListPublic returns public trips owned by anyone except excludeUserID,
	// newest first, paged.
	ListPublic(ctx context.Context, excludeUserID uuid.UUID, page domain.PaginationParams) ([]domain.Trip, error)

	// Update applies a sparse patch and returns the updated record.
	// Nil patch fields are left untouched. Setting IsPublic to false also
	// clears the share token so a revoked link cannot keep working.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)

	// Delete removes a trip by ID. Stops, activities, and expenses go with it
	// via ON DELETE CASCADE. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetShareToken stores a new share token on the trip and flips it public.
	// Any previous token is overwritten — reissue revokes the old link.
	SetShareToken(ctx context.Context, id uuid.UUID, token string) (domain.Trip, error)

	// GetByShareToken resolves a trip by exact token match, public trips only.
	// Returns domain.ErrNotFound for unknown tokens and for tokens of trips
	// that have since been made private.
	GetByShareToken(ctx context.Context, token string) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, title, description, start_date, end_date,
	is_public, share_token, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, title, description, start_date, end_date, is_public)
		VALUES (@user_id, @title, @description, @start_date, @end_date, @is_public)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"user_id":     trip.UserID,
		"title":       trip.Title,
		"description": trip.Description,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"is_public":   trip.IsPublic,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", classify(err))
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", classify(err))
	}
	return result, nil
}

func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", classify(err))
	}
	defer rows.Close()

	return collectTrips(rows, "repo.TripRepo.ListByUser")
}

func (r *pgTripRepo) ListPublic(ctx context.Context, excludeUserID uuid.UUID, page domain.PaginationParams) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE is_public = true AND user_id <> @exclude
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"exclude": excludeUserID,
		"limit":   page.Limit,
		"offset":  page.Offset(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListPublic: %w", classify(err))
	}
	defer rows.Close()

	return collectTrips(rows, "repo.TripRepo.ListPublic")
}

// Update patches only the fields present in the patch. The share token is
// cleared in the same statement when the patch flips the trip private, so a
// dangling link can never outlive the visibility change.
func (r *pgTripRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET title       = COALESCE(@title, title),
		    description = COALESCE(@description, description),
		    start_date  = COALESCE(@start_date, start_date),
		    end_date    = COALESCE(@end_date, end_date),
		    is_public   = COALESCE(@is_public, is_public),
		    share_token = CASE WHEN @is_public = false THEN NULL ELSE share_token END,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          id,
		"title":       patch.Title,
		"description": patch.Description,
		"start_date":  patch.StartDate,
		"end_date":    patch.EndDate,
		"is_public":   patch.IsPublic,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", classify(err))
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) SetShareToken(ctx context.Context, id uuid.UUID, token string) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET share_token = @token,
		    is_public   = true,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "token": token}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.SetShareToken: %w", classify(err))
	}
	return result, nil
}

func (r *pgTripRepo) GetByShareToken(ctx context.Context, token string) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE share_token = @token AND is_public = true`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByShareToken: %w", classify(err))
	}
	return result, nil
}

// collectTrips drains rows into a slice, wrapping errors with op.
func collectTrips(rows pgx.Rows, op string) ([]domain.Trip, error) {
	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, classify(err))
	}
	return trips, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID conversions and the nullable share_token.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		userID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
		token  pgtype.Text
	)

	err := s.Scan(&id, &userID, &t.Title, &t.Description, &start, &end,
		&t.IsPublic, &token, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	if token.Valid {
		t.ShareToken = token.String
	}
	return t, nil
}
