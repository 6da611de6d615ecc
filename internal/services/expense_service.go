// Package services orchestrates expense operations across the store and
// the optional AMQP event stream.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"expenses/internal/amqp"
	"expenses/internal/core"
	"expenses/internal/store"
)

// EventPublisher notifies downstream consumers of expense changes.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, id, action string) error
}

// ExpenseService is the write path for expenses. It validates input,
// normalizes categories, persists through the store and publishes change
// events. Event publishing is best effort: a failed publish never fails
// the operation, the record is already safe in the store.
type ExpenseService struct {
	store  store.Store
	events EventPublisher
}

// NewExpenseService creates a service. events may be nil, in which case
// publishing is skipped.
func NewExpenseService(st store.Store, events EventPublisher) *ExpenseService {
	return &ExpenseService{store: st, events: events}
}

// Store exposes the underlying store for read paths.
func (s *ExpenseService) Store() store.Store {
	return s.store
}

// AddExpense validates and persists a new expense. The category is
// title-cased so informal labels collapse onto one bucket; a zero date
// defaults to today.
func (s *ExpenseService) AddExpense(ctx context.Context, amount core.Money, category, description string, date core.Date) (core.Expense, error) {
	if amount.Cents <= 0 {
		return core.Expense{}, core.ErrInvalidAmount
	}
	if date.IsZero() {
		date = core.Today()
	}

	e := core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    core.NormalizeCategory(category),
		Description: description,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	id, err := s.store.Add(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	e.ID = id

	s.publish(ctx, id, amqp.ActionCreated)
	return e, nil
}

// DeleteExpense removes an expense by id. Returns store.ErrNotFound when
// no record matches.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, id, amqp.ActionDeleted)
	return nil
}

// ImportExpenses persists a batch of already-parsed expenses, typically from
// a CSV file. Returns the number of records stored; stops at the first
// storage failure.
func (s *ExpenseService) ImportExpenses(ctx context.Context, expenses []core.Expense) (int, error) {
	for i, e := range expenses {
		e.Category = core.NormalizeCategory(e.Category)
		if err := e.Validate(); err != nil {
			return i, fmt.Errorf("import record %d: %w", i+1, err)
		}
		id, err := s.store.Add(ctx, e)
		if err != nil {
			return i, fmt.Errorf("import record %d: %w", i+1, err)
		}
		s.publish(ctx, id, amqp.ActionCreated)
	}
	return len(expenses), nil
}

// SeedSampleData loads demo records into an empty store. A non-empty store
// is left untouched.
func (s *ExpenseService) SeedSampleData(ctx context.Context) error {
	existing, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("check store before seeding: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := store.SampleExpenses()
	for _, e := range samples {
		if _, err := s.store.Add(ctx, e); err != nil {
			return fmt.Errorf("seed sample expense %q: %w", e.Description, err)
		}
	}

	slog.InfoContext(ctx, "Seeded sample expenses", "count", len(samples))
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, id, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"id", id, "action", action, "error", err)
	}
}

// Close closes the store and, when it supports closing, the event publisher.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if closer, ok := s.events.(io.Closer); ok && closer != nil {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}
