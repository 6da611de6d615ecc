package core

import "sort"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// TotalSpending sums the amounts of all expenses.
func TotalSpending(expenses []Expense) Money {
	var total Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// CategoryTotals returns the spending total per category.
func CategoryTotals(expenses []Expense) map[string]Money {
	totals := make(map[string]Money)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// SortedCategoryTotals returns per-category totals ordered by amount
// descending, ties broken by name for stable rendering.
func SortedCategoryTotals(expenses []Expense) []CategoryAmount {
	totals := CategoryTotals(expenses)
	out := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// MonthlyTotal sums expenses falling in the given calendar year and month.
func MonthlyTotal(expenses []Expense, year, month int) Money {
	var total Money
	for _, e := range expenses {
		if e.Date.InMonth(year, month) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// PercentOfTotal returns part as a percentage of total, 0 when total is 0.
func PercentOfTotal(part, total Money) float64 {
	if total.Cents == 0 {
		return 0
	}
	return float64(part.Cents) / float64(total.Cents) * 100
}

// AverageExpense returns the mean amount, 0 when there are no expenses.
func AverageExpense(expenses []Expense) Money {
	if len(expenses) == 0 {
		return Money{}
	}
	return Money{Cents: TotalSpending(expenses).Cents / int64(len(expenses))}
}

// DateRange returns the earliest and latest expense dates.
// ok is false when there are no expenses.
func DateRange(expenses []Expense) (min, max Date, ok bool) {
	if len(expenses) == 0 {
		return Date{}, Date{}, false
	}
	min, max = expenses[0].Date, expenses[0].Date
	for _, e := range expenses[1:] {
		if e.Date.Before(min.Time) {
			min = e.Date
		}
		if e.Date.After(max.Time) {
			max = e.Date
		}
	}
	return min, max, true
}

// SortByDateDesc orders expenses newest first, in place. Equal dates keep
// their relative order so freshly added records stay visible at the top.
func SortByDateDesc(expenses []Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date.Time)
	})
}
