package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globetrotter/backend/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record.
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense by its UUID primary key.
	// Returns domain.ErrNotFound if no expense with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error)

	// ListByTrip returns all expenses for a trip, newest first.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	// Update applies a sparse patch and returns the updated record.
	Update(ctx context.Context, id uuid.UUID, patch domain.ExpensePatch) (domain.Expense, error)

	// Delete removes an expense by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// BudgetSummary aggregates a trip's expenses in SQL: grand total plus
	// per-category totals. A trip with no expenses yields a zero summary.
	BudgetSummary(ctx context.Context, tripID uuid.UUID) (domain.BudgetSummary, error)
}

type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, trip_id, stop_id, activity_id, title, amount,
	currency, category, date, notes, created_at, updated_at`

func (r *pgExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (trip_id, stop_id, activity_id, title, amount, currency, category, date, notes)
		VALUES (@trip_id, @stop_id, @activity_id, @title, @amount, @currency, @category, @date, @notes)
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"trip_id":     e.TripID,
		"stop_id":     e.StopID,
		"activity_id": e.ActivityID,
		"title":       e.Title,
		"amount":      e.Amount,
		"currency":    e.Currency,
		"category":    e.Category,
		"date":        e.Date,
		"notes":       e.Notes,
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", classify(err))
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = @id`

	result, err := scanExpense(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", classify(err))
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: %w", classify(err))
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: rows: %w", classify(err))
	}
	return expenses, nil
}

func (r *pgExpenseRepo) Update(ctx context.Context, id uuid.UUID, patch domain.ExpensePatch) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET title      = COALESCE(@title, title),
		    amount     = COALESCE(@amount, amount),
		    currency   = COALESCE(@currency, currency),
		    category   = COALESCE(@category, category),
		    date       = COALESCE(@date, date),
		    notes      = COALESCE(@notes, notes),
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"id":       id,
		"title":    patch.Title,
		"amount":   patch.Amount,
		"currency": patch.Currency,
		"category": patch.Category,
		"date":     patch.Date,
		"notes":    patch.Notes,
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", classify(err))
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgExpenseRepo) BudgetSummary(ctx context.Context, tripID uuid.UUID) (domain.BudgetSummary, error) {
	const q = `
		SELECT category, currency, SUM(amount)
		FROM expenses
		WHERE trip_id = @trip_id
		GROUP BY category, currency
		ORDER BY SUM(amount) DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("repo.ExpenseRepo.BudgetSummary: %w", classify(err))
	}
	defer rows.Close()

	summary := domain.BudgetSummary{ByCategory: make(map[domain.ExpenseCategory]float64)}
	for rows.Next() {
		var (
			category domain.ExpenseCategory
			currency string
			total    float64
		)
		if err := rows.Scan(&category, &currency, &total); err != nil {
			return domain.BudgetSummary{}, fmt.Errorf("repo.ExpenseRepo.BudgetSummary: scan: %w", err)
		}
		summary.ByCategory[category] += total
		summary.Total += total
		// Rows are ordered by size; the first (largest) row picks the
		// reported currency for mixed-currency trips.
		if summary.Currency == "" {
			summary.Currency = currency
		}
	}
	if err := rows.Err(); err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("repo.ExpenseRepo.BudgetSummary: rows: %w", classify(err))
	}
	return summary, nil
}

// scanExpense maps a single database row into a domain.Expense.
// stop_id and activity_id are nullable attributions.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e          domain.Expense
		id         pgtype.UUID
		tripID     pgtype.UUID
		stopID     pgtype.UUID
		activityID pgtype.UUID
		date       pgtype.Date
	)

	err := s.Scan(&id, &tripID, &stopID, &activityID, &e.Title, &e.Amount,
		&e.Currency, &e.Category, &date, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Expense{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	if stopID.Valid {
		sid := uuid.UUID(stopID.Bytes)
		e.StopID = &sid
	}
	if activityID.Valid {
		aid := uuid.UUID(activityID.Bytes)
		e.ActivityID = &aid
	}
	e.Date = date.Time
	return e, nil
}
