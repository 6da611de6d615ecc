package core

import "testing"

func summaryFixture(t *testing.T) []Expense {
	t.Helper()
	return []Expense{
		{ID: "1", Date: mustDate(t, "2025-10-22"), Amount: Money{Cents: 450}, Category: "Food", Description: "coffee"},
		{ID: "2", Date: mustDate(t, "2025-10-20"), Amount: Money{Cents: 1275}, Category: "Food", Description: "lunch"},
		{ID: "3", Date: mustDate(t, "2025-09-30"), Amount: Money{Cents: 1500}, Category: "Transport", Description: "bus pass"},
	}
}

func TestTotalSpending(t *testing.T) {
	expenses := summaryFixture(t)
	if got := TotalSpending(expenses); got.Cents != 3225 {
		t.Errorf("TotalSpending = %d cents, want 3225", got.Cents)
	}
	if got := TotalSpending(nil); got.Cents != 0 {
		t.Errorf("TotalSpending(nil) = %d cents, want 0", got.Cents)
	}
}

func TestCategoryTotals(t *testing.T) {
	expenses := summaryFixture(t)
	totals := CategoryTotals(expenses)

	if got := totals["Food"]; got.Cents != 1725 {
		t.Errorf("Food total = %d cents, want 1725", got.Cents)
	}
	if got := totals["Transport"]; got.Cents != 1500 {
		t.Errorf("Transport total = %d cents, want 1500", got.Cents)
	}

	var sum int64
	for _, amount := range totals {
		sum += amount.Cents
	}
	if sum != TotalSpending(expenses).Cents {
		t.Errorf("category totals sum to %d, total spending is %d", sum, TotalSpending(expenses).Cents)
	}
}

func TestSortedCategoryTotals(t *testing.T) {
	rows := SortedCategoryTotals(summaryFixture(t))
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Name != "Food" || rows[1].Name != "Transport" {
		t.Errorf("order = [%s %s], want [Food Transport]", rows[0].Name, rows[1].Name)
	}
}

func TestMonthlyTotal(t *testing.T) {
	expenses := []Expense{
		{Date: mustDate(t, "2025-10-22"), Amount: Money{Cents: 450}, Category: "Food", Description: "coffee"},
		{Date: mustDate(t, "2025-10-20"), Amount: Money{Cents: 1275}, Category: "Food", Description: "lunch"},
	}

	if got := MonthlyTotal(expenses, 2025, 10); got.Cents != 1725 {
		t.Errorf("MonthlyTotal(2025,10) = %d cents, want 1725", got.Cents)
	}
	if got := MonthlyTotal(expenses, 2025, 11); got.Cents != 0 {
		t.Errorf("MonthlyTotal(2025,11) = %d cents, want 0", got.Cents)
	}
}

func TestPercentOfTotal(t *testing.T) {
	if got := PercentOfTotal(Money{Cents: 50}, Money{Cents: 200}); got != 25 {
		t.Errorf("PercentOfTotal = %v, want 25", got)
	}
	if got := PercentOfTotal(Money{Cents: 50}, Money{}); got != 0 {
		t.Errorf("PercentOfTotal with zero total = %v, want 0", got)
	}
}

func TestAverageExpense(t *testing.T) {
	if got := AverageExpense(summaryFixture(t)); got.Cents != 1075 {
		t.Errorf("AverageExpense = %d cents, want 1075", got.Cents)
	}
	if got := AverageExpense(nil); got.Cents != 0 {
		t.Errorf("AverageExpense(nil) = %d cents, want 0", got.Cents)
	}
}

func TestDateRange(t *testing.T) {
	min, max, ok := DateRange(summaryFixture(t))
	if !ok {
		t.Fatal("expected ok")
	}
	if min.String() != "2025-09-30" || max.String() != "2025-10-22" {
		t.Errorf("range = %s..%s, want 2025-09-30..2025-10-22", min, max)
	}

	if _, _, ok := DateRange(nil); ok {
		t.Error("empty slice should report ok=false")
	}
}

func TestSortByDateDesc(t *testing.T) {
	expenses := summaryFixture(t)
	SortByDateDesc(expenses)
	if expenses[0].ID != "1" || expenses[1].ID != "2" || expenses[2].ID != "3" {
		t.Errorf("order = [%s %s %s], want [1 2 3]", expenses[0].ID, expenses[1].ID, expenses[2].ID)
	}
}
