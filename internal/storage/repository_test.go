package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
	"expenses/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "expenses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testExpense(t *testing.T, date string, cents int64, category, description string) core.Expense {
	t.Helper()
	d, err := core.ParseDate(date)
	require.NoError(t, err)
	return core.Expense{
		Date:        d,
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Description: description,
	}
}

func TestMigrationsSeedDefaultCategories(t *testing.T) {
	repo := newTestRepo(t)

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 9)
	assert.Contains(t, categories, "Food")
	assert.Contains(t, categories, "Other")
}

func TestAddThenAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Add(ctx, testExpense(t, "2025-10-22", 450, "Food", "coffee"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, "2025-10-22", all[0].Date.String())
	assert.Equal(t, int64(450), all[0].Amount.Cents)
	assert.Equal(t, "Food", all[0].Category)
	assert.Equal(t, "coffee", all[0].Description)
}

func TestAddAssignsDistinctIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.Add(ctx, testExpense(t, "2025-10-22", 450, "Food", "coffee"))
	require.NoError(t, err)
	id2, err := repo.Add(ctx, testExpense(t, "2025-10-22", 450, "Food", "teabag"))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestAddRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := testExpense(t, "2025-10-22", 450, "Food", "coffee")
	e.Description = ""
	_, err := repo.Add(ctx, e)
	assert.ErrorIs(t, err, core.ErrEmptyDescription)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAllOrdersNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2025-10-20", "2025-10-22", "2025-10-18"} {
		_, err := repo.Add(ctx, testExpense(t, date, 100, "Food", "meal on "+date))
		require.NoError(t, err)
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-10-22", all[0].Date.String())
	assert.Equal(t, "2025-10-18", all[2].Date.String())
}

func TestByCategoryCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, testExpense(t, "2025-10-22", 450, "Food", "coffee"))
	require.NoError(t, err)
	_, err = repo.Add(ctx, testExpense(t, "2025-10-20", 1500, "Transport", "bus"))
	require.NoError(t, err)

	got, err := repo.ByCategory(ctx, "FOOD")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "coffee", got[0].Description)
}

func TestByDateRangeInclusive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, date := range []string{"2025-09-30", "2025-10-01", "2025-10-31", "2025-11-01"} {
		_, err := repo.Add(ctx, testExpense(t, date, 100, "Food", "meal on "+date))
		require.NoError(t, err)
	}

	start, _ := core.ParseDate("2025-10-01")
	end, _ := core.ParseDate("2025-10-31")
	got, err := repo.ByDateRange(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-10-31", got[0].Date.String())
	assert.Equal(t, "2025-10-01", got[1].Date.String())
}

func TestDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, testExpense(t, "2025-10-22", 450, "Food", "coffee"))
	require.NoError(t, err)

	err = repo.Delete(ctx, "999999")
	assert.ErrorIs(t, err, store.ErrNotFound)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Add(ctx, testExpense(t, "2025-10-22", 450, "Food", "coffee"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, id))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCategoriesGrowWithNewLabels(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, testExpense(t, "2025-10-22", 450, "Gardening", "seeds"))
	require.NoError(t, err)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, "Gardening")
	assert.Len(t, categories, 10)
}
