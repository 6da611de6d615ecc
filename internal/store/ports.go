// Package store defines the persistence port for expense records.
// Two backends implement it: a JSON flat file and a SQLite database.
package store

import (
	"context"
	"errors"

	"expenses/internal/core"
)

// ErrNotFound is returned by Delete when no record carries the given id.
var ErrNotFound = errors.New("expense not found")

type (
	// Store is the canonical persistence abstraction. Implementations must be
	// safe for concurrent use; the web layer shares a single instance.
	Store interface {
		ExpenseWriter
		ExpenseReader
		ExpenseDeleter
		CategoryReader

		Close() error
	}

	ExpenseWriter interface {
		// Add persists the expense and returns its assigned id.
		Add(ctx context.Context, e core.Expense) (id string, err error)
	}

	ExpenseReader interface {
		// All returns every expense ordered by date descending.
		All(ctx context.Context) ([]core.Expense, error)
		// ByCategory returns expenses whose category matches case-insensitively,
		// ordered by date descending.
		ByCategory(ctx context.Context, category string) ([]core.Expense, error)
		// ByDateRange returns expenses with start <= date <= end,
		// ordered by date descending.
		ByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error)
	}

	ExpenseDeleter interface {
		// Delete removes the expense with the given id.
		// Returns ErrNotFound when no such record exists.
		Delete(ctx context.Context, id string) error
	}

	CategoryReader interface {
		// Categories returns the known category labels, sorted. The set grows
		// when an expense introduces a new label and never shrinks on delete.
		Categories(ctx context.Context) ([]string, error)
	}
)

// DefaultCategories seeds every fresh store with the same informal taxonomy.
func DefaultCategories() []string {
	return []string{
		"Food", "Transport", "Entertainment", "Shopping", "Bills",
		"Healthcare", "Education", "Travel", "Other",
	}
}
