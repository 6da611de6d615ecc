// Package jsonstore persists expenses in a single JSON file.
//
// The whole collection is rewritten on every mutation; a mutex serializes
// access so concurrent web requests cannot interleave writes, and the file
// is replaced via temp-file rename so a crash mid-write never leaves a
// truncated store behind.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"expenses/internal/core"
	"expenses/internal/store"
)

// record is the persisted shape: {id, date, amount, category, description}.
type record struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

type Store struct {
	mu         sync.Mutex
	path       string
	items      []core.Expense
	categories map[string]struct{}
}

// Open loads the store from path, creating the parent directory if needed.
// A missing file is not an error; the store starts empty with the default
// category set.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	s := &Store{
		path:       path,
		categories: make(map[string]struct{}),
	}
	for _, c := range store.DefaultCategories() {
		s.categories[c] = struct{}{}
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		slog.Info("No existing expense file, starting fresh", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read expense file: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode expense file %s: %w", s.path, err)
	}

	for _, r := range records {
		date, err := core.ParseDate(r.Date)
		if err != nil {
			slog.Warn("Skipping record with malformed date", "id", r.ID, "date", r.Date)
			continue
		}
		e := core.Expense{
			ID:          r.ID,
			Date:        date,
			Amount:      core.Money{Cents: int64(r.Amount*100 + 0.5)},
			Category:    r.Category,
			Description: r.Description,
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		s.items = append(s.items, e)
		s.categories[e.Category] = struct{}{}
	}

	slog.Info("Loaded expenses from file", "path", s.path, "count", len(s.items))
	return nil
}

// saveLocked rewrites the whole file. Callers must hold s.mu.
func (s *Store) saveLocked() error {
	records := make([]record, len(s.items))
	for i, e := range s.items {
		records[i] = record{
			ID:          e.ID,
			Date:        e.Date.String(),
			Amount:      e.Amount.Dollars(),
			Category:    e.Category,
			Description: e.Description,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write expense file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace expense file: %w", err)
	}
	return nil
}

// Add implements store.ExpenseWriter.
func (s *Store) Add(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.items = append(s.items, e)
	s.categories[e.Category] = struct{}{}

	if err := s.saveLocked(); err != nil {
		// Roll back the in-memory append so memory and file stay in step.
		s.items = s.items[:len(s.items)-1]
		return "", err
	}

	slog.InfoContext(ctx, "Expense saved to JSON store",
		"id", e.ID,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)
	return e.ID, nil
}

// All implements store.ExpenseReader.
func (s *Store) All(ctx context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	core.SortByDateDesc(out)
	return out, nil
}

// ByCategory implements store.ExpenseReader.
func (s *Store) ByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Expense
	for _, e := range s.items {
		if strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	core.SortByDateDesc(out)
	return out, nil
}

// ByDateRange implements store.ExpenseReader.
func (s *Store) ByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Expense
	for _, e := range s.items {
		if !e.Date.Before(start.Time) && !e.Date.After(end.Time) {
			out = append(out, e)
		}
	}
	core.SortByDateDesc(out)
	return out, nil
}

// Delete implements store.ExpenseDeleter. The category set is left untouched
// even when the last expense in a category goes away.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.items {
		if e.ID != id {
			continue
		}
		removed := e
		s.items = append(s.items[:i], s.items[i+1:]...)
		if err := s.saveLocked(); err != nil {
			// Restore the record; the file still holds it.
			s.items = append(s.items[:i], append([]core.Expense{removed}, s.items[i:]...)...)
			return err
		}
		slog.InfoContext(ctx, "Expense deleted from JSON store",
			"id", id, "description", removed.Description)
		return nil
	}
	return store.ErrNotFound
}

// Categories implements store.CategoryReader.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.categories))
	for c := range s.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// Close is a no-op; every mutation already flushed to disk.
func (s *Store) Close() error {
	return nil
}
