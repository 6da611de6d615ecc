// Command expenses is the interactive terminal tracker: a numbered menu for
// adding, browsing, analyzing, exporting and deleting expenses.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"expenses/internal/cli"
	"expenses/internal/core"
	"expenses/internal/csvio"
	"expenses/internal/services"
)

func main() {
	importPath := flag.String("import", "", "import expenses from a CSV file and exit")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)
	b := cli.InitBackend(logger, cfg)
	defer b.Close()

	if *importPath != "" {
		if err := runImport(context.Background(), b.Service, *importPath); err != nil {
			logger.Error("CSV import failed", "file", *importPath, "error", err)
			os.Exit(1)
		}
		return
	}

	a := &app{
		svc: b.Service,
		in:  bufio.NewScanner(os.Stdin),
	}
	a.run(context.Background(), cfg.DataBackend)
}

func runImport(ctx context.Context, svc *services.ExpenseService, path string) error {
	expenses, err := csvio.ImportFile(path)
	if err != nil {
		return err
	}
	n, err := svc.ImportExpenses(ctx, expenses)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d expenses from %s\n", n, path)
	return nil
}

type app struct {
	svc *services.ExpenseService
	in  *bufio.Scanner
}

func (a *app) run(ctx context.Context, backendName string) {
	printHeader("Personal Expense Tracker")
	fmt.Println("Welcome to your personal finance organizer!")
	fmt.Printf("Data backend: %s\n", backendName)

	for {
		a.showMenu()
		choice, ok := a.promptInt("Choose an option", 0, 7)
		if !ok {
			fmt.Println("\nGoodbye!")
			return
		}

		switch choice {
		case 0:
			fmt.Println("\nThank you for using Expense Tracker!")
			return
		case 1:
			a.addExpense(ctx)
		case 2:
			printHeader("All Expenses")
			a.listAll(ctx)
		case 3:
			a.viewByCategory(ctx)
		case 4:
			a.monthlySummary(ctx)
		case 5:
			a.categoryAnalysis(ctx)
		case 6:
			a.exportCSV(ctx)
		case 7:
			a.deleteExpense(ctx)
		}
	}
}

func (a *app) showMenu() {
	printHeader("Main Menu")
	fmt.Println("1. Add Expense")
	fmt.Println("2. View All Expenses")
	fmt.Println("3. View by Category")
	fmt.Println("4. Monthly Summary")
	fmt.Println("5. Category Analysis")
	fmt.Println("6. Export to CSV")
	fmt.Println("7. Delete Expense")
	fmt.Println("0. Exit")
	fmt.Println()
}

func (a *app) addExpense(ctx context.Context) {
	printHeader("Add New Expense")

	cents, ok := a.promptAmount("Enter amount")
	if !ok {
		return
	}

	categories, err := a.svc.Store().Categories(ctx)
	if err != nil {
		fmt.Printf("Failed to load categories: %v\n", err)
		return
	}

	fmt.Println("\nAvailable categories:")
	for i, cat := range categories {
		fmt.Printf("%d. %s\n", i+1, cat)
	}
	fmt.Printf("%d. Create new category\n", len(categories)+1)

	choice, ok := a.promptInt("Choose category (number)", 1, len(categories)+1)
	if !ok {
		return
	}

	var category string
	if choice <= len(categories) {
		category = categories[choice-1]
	} else {
		category, ok = a.promptString("Enter new category name")
		if !ok {
			return
		}
	}

	description, ok := a.promptString("Enter description")
	if !ok {
		return
	}

	fmt.Println("\nPress Enter for today's date, or enter date (YYYY-MM-DD):")
	var date core.Date
	for {
		line, ok := a.readLine("Date")
		if !ok {
			return
		}
		if line == "" {
			break
		}
		d, err := core.ParseDate(line)
		if err != nil {
			fmt.Println("Please enter a valid date in YYYY-MM-DD format!")
			continue
		}
		date = d
		break
	}

	expense, err := a.svc.AddExpense(ctx, core.Money{Cents: cents}, category, description, date)
	if err != nil {
		fmt.Printf("Failed to add expense: %v\n", err)
		return
	}
	fmt.Printf("Added: %s\n", formatExpense(expense))
}

func (a *app) listAll(ctx context.Context) {
	expenses, err := a.svc.Store().All(ctx)
	if err != nil {
		fmt.Printf("Failed to load expenses: %v\n", err)
		return
	}
	displayExpenses(expenses)
}

func (a *app) viewByCategory(ctx context.Context) {
	categories, err := a.svc.Store().Categories(ctx)
	if err != nil {
		fmt.Printf("Failed to load categories: %v\n", err)
		return
	}
	if len(categories) == 0 {
		fmt.Println("No categories found!")
		return
	}

	printHeader("View by Category")
	for i, cat := range categories {
		fmt.Printf("%d. %s\n", i+1, cat)
	}

	choice, ok := a.promptInt("Choose category (number)", 1, len(categories))
	if !ok {
		return
	}

	selected := categories[choice-1]
	expenses, err := a.svc.Store().ByCategory(ctx, selected)
	if err != nil {
		fmt.Printf("Failed to load expenses: %v\n", err)
		return
	}

	printHeader(fmt.Sprintf("Expenses in '%s'", selected))
	displayExpenses(expenses)
}

func (a *app) monthlySummary(ctx context.Context) {
	printHeader("Monthly Summary")

	year, ok := a.promptInt("Enter year", 2000, 2100)
	if !ok {
		return
	}
	month, ok := a.promptInt("Enter month (1-12)", 1, 12)
	if !ok {
		return
	}

	expenses, err := a.svc.Store().All(ctx)
	if err != nil {
		fmt.Printf("Failed to load expenses: %v\n", err)
		return
	}

	total := core.MonthlyTotal(expenses, year, month)
	monthName := core.NewDate(year, month, 1).Format("January")
	fmt.Printf("\n%s %d Total: %s\n", monthName, year, total.String())

	var monthly []core.Expense
	for _, e := range expenses {
		if e.Date.InMonth(year, month) {
			monthly = append(monthly, e)
		}
	}
	if len(monthly) > 0 {
		printHeader("Expenses this month")
		displayExpenses(monthly)
	}
}

func (a *app) categoryAnalysis(ctx context.Context) {
	printHeader("Category Analysis")

	expenses, err := a.svc.Store().All(ctx)
	if err != nil {
		fmt.Printf("Failed to load expenses: %v\n", err)
		return
	}
	if len(expenses) == 0 {
		fmt.Println("No expenses recorded yet!")
		return
	}

	total := core.TotalSpending(expenses)
	fmt.Printf("%-15s %-10s %-10s\n", "Category", "Amount", "Percentage")
	fmt.Println(strings.Repeat("-", 40))
	for _, row := range core.SortedCategoryTotals(expenses) {
		pct := core.PercentOfTotal(row.Amount, total)
		fmt.Printf("%-15s %-10s %.1f%%\n", row.Name, row.Amount.String(), pct)
	}
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("%-15s %-10s %s\n", "TOTAL", total.String(), "100.0%")
}

func (a *app) exportCSV(ctx context.Context) {
	expenses, err := a.svc.Store().All(ctx)
	if err != nil {
		fmt.Printf("Failed to load expenses: %v\n", err)
		return
	}
	if len(expenses) == 0 {
		fmt.Println("No expenses to export!")
		return
	}

	filename, ok := a.readLine("Enter CSV filename (or press Enter for default)")
	if !ok {
		return
	}
	if filename == "" {
		filename = csvio.DefaultExportFilename()
	}

	if err := csvio.ExportFile(filename, expenses); err != nil {
		fmt.Printf("Export failed: %v\n", err)
		return
	}
	fmt.Printf("Exported %d expenses to %s\n", len(expenses), filename)
}

func (a *app) deleteExpense(ctx context.Context) {
	expenses, err := a.svc.Store().All(ctx)
	if err != nil {
		fmt.Printf("Failed to load expenses: %v\n", err)
		return
	}
	if len(expenses) == 0 {
		fmt.Println("No expenses to delete!")
		return
	}

	printHeader("Delete Expense")
	fmt.Println("Recent expenses:")

	recent := expenses
	if len(recent) > 10 {
		recent = recent[:10]
	}
	for i, e := range recent {
		fmt.Printf("%d. %s\n", i+1, formatExpense(e))
	}

	choice, ok := a.promptInt("Choose expense to delete (number)", 1, len(recent))
	if !ok {
		return
	}
	selected := recent[choice-1]

	fmt.Println("\nAre you sure you want to delete:")
	fmt.Println(formatExpense(selected))
	confirm, ok := a.readLine("Type 'yes' to confirm")
	if !ok {
		return
	}
	if strings.ToLower(confirm) != "yes" {
		fmt.Println("Deletion cancelled.")
		return
	}

	if err := a.svc.DeleteExpense(ctx, selected.ID); err != nil {
		fmt.Printf("Failed to delete expense: %v\n", err)
		return
	}
	fmt.Println("Expense deleted.")
}

// readLine prompts and reads one trimmed line. ok is false on EOF.
func (a *app) readLine(prompt string) (string, bool) {
	fmt.Printf("%s: ", prompt)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *app) promptString(prompt string) (string, bool) {
	for {
		line, ok := a.readLine(prompt)
		if !ok {
			return "", false
		}
		if line == "" {
			fmt.Println("This field cannot be empty!")
			continue
		}
		return line, true
	}
}

func (a *app) promptInt(prompt string, min, max int) (int, bool) {
	for {
		line, ok := a.readLine(prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("Please enter a valid number!")
			continue
		}
		if n < min || n > max {
			fmt.Printf("Please enter a number between %d and %d!\n", min, max)
			continue
		}
		return n, true
	}
}

func (a *app) promptAmount(prompt string) (int64, bool) {
	for {
		line, ok := a.readLine(prompt)
		if !ok {
			return 0, false
		}
		cents, err := core.ParseDecimalToCents(line)
		if err != nil || cents <= 0 {
			fmt.Println("Please enter a positive amount, e.g. 12.50!")
			continue
		}
		return cents, true
	}
}

func formatExpense(e core.Expense) string {
	return fmt.Sprintf("%s | %8s | %-15s | %s", e.Date.String(), e.Amount.String(), e.Category, e.Description)
}

func displayExpenses(expenses []core.Expense) {
	if len(expenses) == 0 {
		fmt.Println("No expenses to display.")
		return
	}

	fmt.Printf("\n%-12s %-8s %-15s %s\n", "Date", "Amount", "Category", "Description")
	fmt.Println(strings.Repeat("-", 60))
	for _, e := range expenses {
		fmt.Println(formatExpense(e))
	}
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Total: %s\n", core.TotalSpending(expenses).String())
}

func printHeader(title string) {
	line := strings.Repeat("=", 50)
	fmt.Println("\n" + line)
	pad := (50 - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Println(strings.Repeat(" ", pad) + title)
	fmt.Println(line)
}
