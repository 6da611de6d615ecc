package store

import "expenses/internal/core"

// SampleExpenses returns demo records used to seed an empty store so the
// dashboard and reports have something to show on first run.
func SampleExpenses() []core.Expense {
	rows := []struct {
		cents    int64
		category string
		desc     string
		date     string
	}{
		{450, "Food", "Morning coffee at local cafe", "2025-10-22"},
		{1275, "Food", "Lunch at downtown restaurant", "2025-10-20"},
		{825, "Food", "Pizza delivery for dinner", "2025-10-18"},
		{6789, "Shopping", "Weekly groceries at supermarket", "2025-10-21"},
		{4599, "Shopping", "New book and stationery supplies", "2025-10-17"},
		{1500, "Transport", "Bus fare for city center trip", "2025-10-24"},
		{3560, "Transport", "Taxi ride to airport", "2025-10-15"},
		{1850, "Entertainment", "Movie tickets for evening show", "2025-10-19"},
		{12500, "Bills", "Monthly electricity bill", "2025-10-05"},
		{4500, "Bills", "Mobile phone bill", "2025-10-07"},
		{7500, "Healthcare", "Doctor consultation", "2025-10-12"},
		{2495, "Healthcare", "Prescription medication", "2025-10-13"},
	}

	out := make([]core.Expense, 0, len(rows))
	for _, r := range rows {
		date, err := core.ParseDate(r.date)
		if err != nil {
			continue
		}
		out = append(out, core.Expense{
			Date:        date,
			Amount:      core.Money{Cents: r.cents},
			Category:    r.category,
			Description: r.desc,
		})
	}
	return out
}
