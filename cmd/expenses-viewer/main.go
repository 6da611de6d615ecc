// Command expenses-viewer is a read-only terminal view over the expense
// store: dashboard, category groups, recent expenses and spending trends.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"expenses/internal/cli"
	"expenses/internal/core"
	"expenses/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)
	b := cli.InitBackend(logger, cfg)
	defer b.Close()

	v := &viewer{
		reader: b.Store,
		in:     bufio.NewScanner(os.Stdin),
	}
	v.run(context.Background())
}

type viewer struct {
	reader   store.ExpenseReader
	in       *bufio.Scanner
	expenses []core.Expense
}

func (v *viewer) run(ctx context.Context) {
	v.refresh(ctx)

	for {
		printHeader("Expense Viewer - Read Only")
		fmt.Println("What would you like to view?")
		fmt.Println()
		fmt.Println("1. Dashboard Overview")
		fmt.Println("2. Expenses by Category")
		fmt.Println("3. Recent Expenses")
		fmt.Println("4. Spending Analysis")
		fmt.Println("5. Refresh Data")
		fmt.Println("0. Exit")
		fmt.Println()

		fmt.Print("Enter your choice: ")
		if !v.in.Scan() {
			fmt.Println("\nThanks for viewing!")
			return
		}

		switch strings.TrimSpace(v.in.Text()) {
		case "1":
			v.showDashboard()
		case "2":
			v.showByCategory()
		case "3":
			v.showRecent(10)
		case "4":
			v.showTrends()
		case "5":
			fmt.Println("Refreshing data...")
			v.refresh(ctx)
		case "0":
			fmt.Println("Thanks for viewing!")
			return
		default:
			fmt.Println("Please enter a valid choice (0-5)")
		}
	}
}

func (v *viewer) refresh(ctx context.Context) {
	expenses, err := v.reader.All(ctx)
	if err != nil {
		fmt.Printf("Error loading data: %v\n", err)
		return
	}
	v.expenses = expenses
	fmt.Printf("Loaded %d expenses\n", len(expenses))
}

func (v *viewer) showDashboard() {
	printHeader("Expense Dashboard - Read Only View")

	if len(v.expenses) == 0 {
		fmt.Println("No expense data available.")
		return
	}

	total := core.TotalSpending(v.expenses)
	avg := core.AverageExpense(v.expenses)
	minDate, maxDate := "N/A", "N/A"
	if min, max, ok := core.DateRange(v.expenses); ok {
		minDate = min.String()
		maxDate = max.String()
	}

	fmt.Println("┌" + strings.Repeat("─", 48) + "┐")
	fmt.Printf("│ %-46s │\n", centered("EXPENSE SUMMARY", 46))
	fmt.Println("├" + strings.Repeat("─", 48) + "┤")
	fmt.Printf("│ Total Expenses: %-30d │\n", len(v.expenses))
	fmt.Printf("│ Total Amount:   %-30s │\n", total.String())
	fmt.Printf("│ Average:        %-30s │\n", avg.String())
	fmt.Printf("│ Date Range:     %-30s │\n", minDate+" to "+maxDate)
	fmt.Println("└" + strings.Repeat("─", 48) + "┘")
}

func (v *viewer) showByCategory() {
	printHeader("Expenses by Category")

	if len(v.expenses) == 0 {
		fmt.Println("No expenses to display.")
		return
	}

	groups := make(map[string][]core.Expense)
	for _, e := range v.expenses {
		groups[e.Category] = append(groups[e.Category], e)
	}

	for _, row := range core.SortedCategoryTotals(v.expenses) {
		fmt.Printf("\n%s (%s)\n", strings.ToUpper(row.Name), row.Amount.String())
		fmt.Println(strings.Repeat("─", 60))
		for _, e := range groups[row.Name] {
			fmt.Printf("  %s | %8s | %s\n", e.Date.String(), e.Amount.String(), e.Description)
		}
	}
}

func (v *viewer) showRecent(limit int) {
	printHeader(fmt.Sprintf("Recent Expenses (Last %d)", limit))

	if len(v.expenses) == 0 {
		fmt.Println("No expenses to display.")
		return
	}

	recent := make([]core.Expense, len(v.expenses))
	copy(recent, v.expenses)
	core.SortByDateDesc(recent)
	if len(recent) > limit {
		recent = recent[:limit]
	}

	fmt.Println("Date       | Amount  | Category     | Description")
	fmt.Println(strings.Repeat("─", 65))
	for _, e := range recent {
		fmt.Printf("%s | %7s | %-12s | %s\n", e.Date.String(), e.Amount.String(), e.Category, e.Description)
	}
}

func (v *viewer) showTrends() {
	printHeader("Spending Analysis")

	if len(v.expenses) == 0 {
		fmt.Println("No data for analysis.")
		return
	}

	total := core.TotalSpending(v.expenses)
	fmt.Println("Category Breakdown:")
	fmt.Println(strings.Repeat("─", 40))

	for _, row := range core.SortedCategoryTotals(v.expenses) {
		pct := core.PercentOfTotal(row.Amount, total)
		barLen := int(pct / 2)
		if barLen > 30 {
			barLen = 30
		}
		bar := strings.Repeat("█", barLen) + strings.Repeat("░", 30-barLen)

		fmt.Printf("%-12s %9s (%5.1f%%)\n", row.Name, row.Amount.String(), pct)
		fmt.Printf("             %s\n", bar)
	}
}

func centered(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-pad-len(s))
}

func printHeader(title string) {
	line := strings.Repeat("=", 50)
	fmt.Println("\n" + line)
	fmt.Println(centered(title, 50))
	fmt.Println(line)
}
