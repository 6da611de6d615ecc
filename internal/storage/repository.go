// Package storage implements the SQLite-backed expense store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"expenses/internal/core"
	"expenses/internal/store"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Add implements store.ExpenseWriter. The category label is also registered
// in the categories table so the set grows with new labels.
func (r *SQLiteRepository) Add(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, amount_cents, category, description)
		 VALUES (?, ?, ?, ?)`,
		e.Date.String(), e.Amount.Cents, e.Category, e.Description)
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("expense id: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO categories (name) VALUES (?)`, e.Category); err != nil {
		slog.WarnContext(ctx, "Failed to register category", "category", e.Category, "error", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", id,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return strconv.FormatInt(id, 10), nil
}

const selectExpense = `SELECT id, date, amount_cents, category, description FROM expenses`

// All implements store.ExpenseReader.
func (r *SQLiteRepository) All(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, selectExpense+` ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// ByCategory implements store.ExpenseReader with a case-insensitive match.
func (r *SQLiteRepository) ByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		selectExpense+` WHERE category = ? COLLATE NOCASE ORDER BY date DESC, id DESC`, category)
	if err != nil {
		return nil, fmt.Errorf("list expenses by category %q: %w", category, err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// ByDateRange implements store.ExpenseReader. Dates are stored as ISO strings,
// so the lexicographic comparison matches chronological order.
func (r *SQLiteRepository) ByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		selectExpense+` WHERE date >= ? AND date <= ? ORDER BY date DESC, id DESC`,
		start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("list expenses by date range: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// Delete implements store.ExpenseDeleter.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted from SQLite", "id", id)
	return nil
}

// Categories implements store.CategoryReader. Seeded labels come from the
// categories table; labels introduced by expenses are unioned in so older
// databases stay consistent.
func (r *SQLiteRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM categories
		 UNION
		 SELECT DISTINCT category FROM expenses
		 ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var out []core.Expense
	for rows.Next() {
		var (
			id    int64
			date  string
			cents int64
			e     core.Expense
		)
		if err := rows.Scan(&id, &date, &cents, &e.Category, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			slog.Warn("Skipping row with malformed date", "id", id, "date", date)
			continue
		}
		e.ID = strconv.FormatInt(id, 10)
		e.Date = d
		e.Amount = core.Money{Cents: cents}
		out = append(out, e)
	}
	return out, rows.Err()
}
