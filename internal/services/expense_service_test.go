package services

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
	"expenses/internal/store"
)

// fakeStore is an in-memory store.Store for service tests.
type fakeStore struct {
	items  []core.Expense
	nextID int
	addErr error
}

func (f *fakeStore) Add(ctx context.Context, e core.Expense) (string, error) {
	if f.addErr != nil {
		return "", f.addErr
	}
	f.nextID++
	e.ID = strconv.Itoa(f.nextID)
	f.items = append(f.items, e)
	return e.ID, nil
}

func (f *fakeStore) All(ctx context.Context) ([]core.Expense, error) {
	out := make([]core.Expense, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeStore) ByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	var out []core.Expense
	for _, e := range f.items {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	return f.All(ctx)
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	for i, e := range f.items {
		if e.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) Categories(ctx context.Context) ([]string, error) {
	return store.DefaultCategories(), nil
}

func (f *fakeStore) Close() error { return nil }

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []string
	err    error
}

func (p *recordingPublisher) PublishExpenseEvent(ctx context.Context, id, action string) error {
	p.events = append(p.events, action+":"+id)
	return p.err
}

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAddExpense(t *testing.T) {
	st := &fakeStore{}
	pub := &recordingPublisher{}
	svc := NewExpenseService(st, pub)

	e, err := svc.AddExpense(context.Background(), core.Money{Cents: 450}, "food", "coffee", mustDate(t, "2025-10-22"))
	require.NoError(t, err)

	assert.Equal(t, "1", e.ID)
	assert.Equal(t, "Food", e.Category, "category should be title-cased")
	assert.Equal(t, []string{"created:1"}, pub.events)
	assert.Len(t, st.items, 1)
}

func TestAddExpenseDefaultsDateToToday(t *testing.T) {
	st := &fakeStore{}
	svc := NewExpenseService(st, nil)

	e, err := svc.AddExpense(context.Background(), core.Money{Cents: 450}, "Food", "coffee", core.Date{})
	require.NoError(t, err)
	assert.Equal(t, core.Today().String(), e.Date.String())
}

func TestAddExpenseValidation(t *testing.T) {
	svc := NewExpenseService(&fakeStore{}, nil)
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, core.Money{}, "Food", "coffee", core.Date{})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = svc.AddExpense(ctx, core.Money{Cents: -5}, "Food", "coffee", core.Date{})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = svc.AddExpense(ctx, core.Money{Cents: 450}, "  ", "coffee", core.Date{})
	assert.ErrorIs(t, err, core.ErrEmptyCategory)

	_, err = svc.AddExpense(ctx, core.Money{Cents: 450}, "Food", "", core.Date{})
	assert.ErrorIs(t, err, core.ErrEmptyDescription)
}

func TestAddExpensePublishFailureDoesNotFail(t *testing.T) {
	st := &fakeStore{}
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewExpenseService(st, pub)

	_, err := svc.AddExpense(context.Background(), core.Money{Cents: 450}, "Food", "coffee", mustDate(t, "2025-10-22"))
	require.NoError(t, err)
	assert.Len(t, st.items, 1, "record must be stored despite publish failure")
}

func TestAddExpenseStoreFailure(t *testing.T) {
	st := &fakeStore{addErr: errors.New("disk full")}
	pub := &recordingPublisher{}
	svc := NewExpenseService(st, pub)

	_, err := svc.AddExpense(context.Background(), core.Money{Cents: 450}, "Food", "coffee", mustDate(t, "2025-10-22"))
	require.Error(t, err)
	assert.Empty(t, pub.events, "no event should be published when the store fails")
}

func TestDeleteExpense(t *testing.T) {
	st := &fakeStore{}
	pub := &recordingPublisher{}
	svc := NewExpenseService(st, pub)

	e, err := svc.AddExpense(context.Background(), core.Money{Cents: 450}, "Food", "coffee", mustDate(t, "2025-10-22"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExpense(context.Background(), e.ID))
	assert.Empty(t, st.items)
	assert.Equal(t, []string{"created:" + e.ID, "deleted:" + e.ID}, pub.events)
}

func TestDeleteExpenseNotFound(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewExpenseService(&fakeStore{}, pub)

	err := svc.DeleteExpense(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Empty(t, pub.events)
}

func TestImportExpenses(t *testing.T) {
	st := &fakeStore{}
	svc := NewExpenseService(st, nil)

	batch := []core.Expense{
		{Date: mustDate(t, "2025-10-22"), Amount: core.Money{Cents: 450}, Category: "food", Description: "coffee"},
		{Date: mustDate(t, "2025-10-20"), Amount: core.Money{Cents: 1275}, Category: "Food", Description: "lunch"},
	}
	n, err := svc.ImportExpenses(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Food", st.items[0].Category)
}

func TestSeedSampleData(t *testing.T) {
	st := &fakeStore{}
	svc := NewExpenseService(st, nil)
	ctx := context.Background()

	require.NoError(t, svc.SeedSampleData(ctx))
	seeded := len(st.items)
	assert.Greater(t, seeded, 0)

	// A second call must not duplicate anything.
	require.NoError(t, svc.SeedSampleData(ctx))
	assert.Len(t, st.items, seeded)
}
