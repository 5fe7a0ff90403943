package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globetrotter/backend/internal/domain"
)

// StopRepo defines the persistence operations for Stops, including the
// ordering engine that keeps order_index dense within each trip.
type StopRepo interface {
	// Create appends a stop to its trip: order_index is assigned max+1 (or 0
	// for the first stop) inside a transaction holding a per-trip advisory
	// lock, so two concurrent appends can never mint the same index.
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// GetByID retrieves a single stop by its UUID primary key.
	// Returns domain.ErrNotFound if no stop with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error)

	// ListByTrip returns all stops for a trip ordered by order_index ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)

	// Update applies a sparse patch to a stop. Positions are untouchable here;
	// they change only through Reorder. Returns domain.ErrNotFound if the stop
	// does not exist.
	Update(ctx context.Context, id uuid.UUID, patch domain.StopPatch) (domain.Stop, error)

	// Delete removes a stop and renumbers the trip's remaining stops in the
	// same transaction, so the index set stays exactly {0..n-1}.
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error

	// Reorder atomically rewrites order_index = position for the submitted
	// sequence. Fail-closed: the submitted id set must equal the trip's actual
	// stop set exactly (no missing, extra, foreign, or duplicate ids), or the
	// whole operation is rejected with domain.ErrValidation and nothing is
	// written. Returns the stops in their new order.
	Reorder(ctx context.Context, tripID uuid.UUID, stopIDs []uuid.UUID) ([]domain.Stop, error)
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db txdb
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx — Begin then opens
// a savepoint, so rollback isolation still holds for the transactional paths.
func NewStopRepo(db txdb) StopRepo {
	return &pgStopRepo{db: db}
}

const stopColumns = `id, trip_id, city, country, order_index, start_date,
	end_date, notes, created_at, updated_at`

// lockTrip serializes writers of one trip's ordering for the duration of the
// current transaction. The lock key is derived from the trip id; unrelated
// trips never contend.
func lockTrip(ctx context.Context, tx pgx.Tx, tripID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended(@trip_id::text, 0))`,
		pgx.NamedArgs{"trip_id": tripID})
	return err
}

func (r *pgStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: begin: %w", classify(err))
	}
	defer tx.Rollback(ctx)

	if err := lockTrip(ctx, tx, stop.TripID); err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: lock: %w", classify(err))
	}

	const q = `
		INSERT INTO stops (trip_id, city, country, order_index, start_date, end_date, notes)
		SELECT @trip_id, @city, @country,
		       COALESCE(MAX(order_index), -1) + 1,
		       @start_date, @end_date, @notes
		FROM stops WHERE trip_id = @trip_id
		RETURNING ` + stopColumns

	args := pgx.NamedArgs{
		"trip_id":    stop.TripID,
		"city":       stop.City,
		"country":    stop.Country,
		"start_date": stop.StartDate,
		"end_date":   stop.EndDate,
		"notes":      stop.Notes,
	}

	result, err := scanStop(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: %w", classify(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: commit: %w", classify(err))
	}
	return result, nil
}

func (r *pgStopRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Stop, error) {
	const q = `SELECT ` + stopColumns + ` FROM stops WHERE id = @id`

	result, err := scanStop(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", classify(err))
	}
	return result, nil
}

func (r *pgStopRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT ` + stopColumns + `
		FROM stops
		WHERE trip_id = @trip_id
		ORDER BY order_index ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTrip: %w", classify(err))
	}
	defer rows.Close()

	return collectStops(rows, "repo.StopRepo.ListByTrip")
}

func (r *pgStopRepo) Update(ctx context.Context, id uuid.UUID, patch domain.StopPatch) (domain.Stop, error) {
	const q = `
		UPDATE stops
		SET city       = COALESCE(@city, city),
		    country    = COALESCE(@country, country),
		    start_date = COALESCE(@start_date, start_date),
		    end_date   = COALESCE(@end_date, end_date),
		    notes      = COALESCE(@notes, notes),
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + stopColumns

	args := pgx.NamedArgs{
		"id":         id,
		"city":       patch.City,
		"country":    patch.Country,
		"start_date": patch.StartDate,
		"end_date":   patch.EndDate,
		"notes":      patch.Notes,
	}

	result, err := scanStop(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Update: %w", classify(err))
	}
	return result, nil
}

// Delete removes the stop and closes the gap it leaves: remaining stops are
// renumbered by rank in one statement, under the same per-trip lock that
// append and reorder take.
func (r *pgStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: begin: %w", classify(err))
	}
	defer tx.Rollback(ctx)

	if err := lockTrip(ctx, tx, tripID); err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: lock: %w", classify(err))
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM stops WHERE id = @id AND trip_id = @trip_id`,
		pgx.NamedArgs{"id": stopID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.Delete: %w", domain.ErrNotFound)
	}

	const renumber = `
		UPDATE stops
		SET order_index = ranked.rn - 1
		FROM (
			SELECT id, row_number() OVER (ORDER BY order_index) AS rn
			FROM stops
			WHERE trip_id = @trip_id
		) AS ranked
		WHERE stops.id = ranked.id AND stops.order_index <> ranked.rn - 1`

	if _, err := tx.Exec(ctx, renumber, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: renumber: %w", classify(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: commit: %w", classify(err))
	}
	return nil
}

func (r *pgStopRepo) Reorder(ctx context.Context, tripID uuid.UUID, stopIDs []uuid.UUID) ([]domain.Stop, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.Reorder: begin: %w", classify(err))
	}
	defer tx.Rollback(ctx)

	if err := lockTrip(ctx, tx, tripID); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.Reorder: lock: %w", classify(err))
	}

	// Load the trip's actual stop-id set and demand exact equality with the
	// submitted sequence before touching anything. Trusting the caller's
	// completeness would let a partial reorder break the dense invariant.
	rows, err := tx.Query(ctx,
		`SELECT id FROM stops WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.Reorder: %w", classify(err))
	}
	actual := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("repo.StopRepo.Reorder: scan: %w", err)
		}
		actual[uuid.UUID(id.Bytes)] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.Reorder: rows: %w", classify(err))
	}

	if len(stopIDs) != len(actual) {
		return nil, fmt.Errorf("repo.StopRepo.Reorder: %w: submitted %d stop ids, trip has %d",
			domain.ErrValidation, len(stopIDs), len(actual))
	}
	seen := make(map[uuid.UUID]bool, len(stopIDs))
	for _, id := range stopIDs {
		if !actual[id] {
			return nil, fmt.Errorf("repo.StopRepo.Reorder: %w: stop %s does not belong to trip",
				domain.ErrValidation, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("repo.StopRepo.Reorder: %w: stop %s listed twice",
				domain.ErrValidation, id)
		}
		seen[id] = true
	}

	// The unique (trip_id, order_index) constraint is DEFERRABLE INITIALLY
	// DEFERRED, so intermediate collisions during the rewrite are legal until
	// commit.
	for pos, id := range stopIDs {
		if _, err := tx.Exec(ctx,
			`UPDATE stops SET order_index = @pos, updated_at = now()
			 WHERE id = @id AND trip_id = @trip_id`,
			pgx.NamedArgs{"pos": pos, "id": id, "trip_id": tripID}); err != nil {
			return nil, fmt.Errorf("repo.StopRepo.Reorder: %w", classify(err))
		}
	}

	ordered, err := tx.Query(ctx,
		`SELECT `+stopColumns+` FROM stops WHERE trip_id = @trip_id ORDER BY order_index ASC`,
		pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.Reorder: %w", classify(err))
	}
	stops, err := collectStops(ordered, "repo.StopRepo.Reorder")
	ordered.Close()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.Reorder: commit: %w", classify(err))
	}
	return stops, nil
}

// collectStops drains rows into a slice, wrapping errors with op.
func collectStops(rows pgx.Rows, op string) ([]domain.Stop, error) {
	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, classify(err))
	}
	return stops, nil
}

// scanStop maps a single database row into a domain.Stop.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		st     domain.Stop
		id     pgtype.UUID
		tripID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
	)

	err := s.Scan(&id, &tripID, &st.City, &st.Country, &st.OrderIndex,
		&start, &end, &st.Notes, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return domain.Stop{}, err
	}

	st.ID = uuid.UUID(id.Bytes)
	st.TripID = uuid.UUID(tripID.Bytes)
	st.StartDate = start.Time
	st.EndDate = end.Time
	return st, nil
}
