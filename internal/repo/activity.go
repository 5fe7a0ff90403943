package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globetrotter/backend/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity by its UUID primary key.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListByStop returns all activities for a stop ordered by date, then time.
	ListByStop(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error)

	// Update applies a sparse patch and returns the updated record.
	Update(ctx context.Context, id uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error)

	// Delete removes an activity by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `id, stop_id, title, description, date, time,
	duration_min, category, notes, created_at, updated_at`

func (r *pgActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (stop_id, title, description, date, time, duration_min, category, notes)
		VALUES (@stop_id, @title, @description, @date, @time, @duration_min, @category, @notes)
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"stop_id":      a.StopID,
		"title":        a.Title,
		"description":  a.Description,
		"date":         a.Date,
		"time":         a.Time,
		"duration_min": a.DurationMin,
		"category":     a.Category,
		"notes":        a.Notes,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", classify(err))
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities WHERE id = @id`

	result, err := scanActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", classify(err))
	}
	return result, nil
}

func (r *pgActivityRepo) ListByStop(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE stop_id = @stop_id
		ORDER BY date ASC, time ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"stop_id": stopID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByStop: %w", classify(err))
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByStop: scan: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByStop: rows: %w", classify(err))
	}
	return activities, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, id uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET title        = COALESCE(@title, title),
		    description  = COALESCE(@description, description),
		    date         = COALESCE(@date, date),
		    time         = COALESCE(@time, time),
		    duration_min = COALESCE(@duration_min, duration_min),
		    category     = COALESCE(@category, category),
		    notes        = COALESCE(@notes, notes),
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"id":           id,
		"title":        patch.Title,
		"description":  patch.Description,
		"date":         patch.Date,
		"time":         patch.Time,
		"duration_min": patch.DurationMin,
		"category":     patch.Category,
		"notes":        patch.Notes,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", classify(err))
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM activities WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		stopID pgtype.UUID
		date   pgtype.Date
	)

	err := s.Scan(&id, &stopID, &a.Title, &a.Description, &date, &a.Time,
		&a.DurationMin, &a.Category, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.StopID = uuid.UUID(stopID.Bytes)
	a.Date = date.Time
	return a, nil
}
