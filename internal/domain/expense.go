package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseCategory classifies spending for the budget summary.
type ExpenseCategory string

const (
	ExpenseAccommodation ExpenseCategory = "accommodation"
	ExpenseFood          ExpenseCategory = "food"
	ExpenseTransport     ExpenseCategory = "transport"
	ExpenseActivities    ExpenseCategory = "activities"
	ExpenseShopping      ExpenseCategory = "shopping"
	ExpenseOther         ExpenseCategory = "other"
)

// Valid reports whether c is one of the known expense categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseAccommodation, ExpenseFood, ExpenseTransport,
		ExpenseActivities, ExpenseShopping, ExpenseOther:
		return true
	}
	return false
}

// Expense is money spent on a trip. StopID and ActivityID are optional
// attributions — nil means the expense belongs to the trip as a whole.
// Amount maps to a Postgres numeric(12,2) column.
type Expense struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	StopID     *uuid.UUID
	ActivityID *uuid.UUID
	Title      string
	Amount     float64
	Currency   string
	Category   ExpenseCategory
	Date       time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExpensePatch carries the optional fields for a sparse expense update.
type ExpensePatch struct {
	Title    *string
	Amount   *float64
	Currency *string
	Category *ExpenseCategory
	Date     *time.Time
	Notes    *string
}

// BudgetSummary aggregates a trip's expenses: grand total plus a per-category
// breakdown. Amounts are summed as-is with no conversion; on a mixed-currency
// trip, Currency is the currency of the largest-sum group.
type BudgetSummary struct {
	Total      float64
	Currency   string
	ByCategory map[ExpenseCategory]float64
}
