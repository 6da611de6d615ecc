// Package report renders a self-contained, shareable HTML expense report.
// The output is a single file anyone can open in a browser, no server needed.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"expenses/internal/core"
)

//go:embed report.html.tmpl
var templateFS embed.FS

type categoryRow struct {
	Name    string
	Amount  string
	Percent float64
}

type expenseRow struct {
	Date        string
	Category    string
	Description string
	Amount      string
}

type reportData struct {
	GeneratedAt string
	NumExpenses int
	Total       string
	Average     string
	MinDate     string
	MaxDate     string
	Categories  []categoryRow
	Expenses    []expenseRow
}

// Generate writes the HTML report for the given expenses to w.
func Generate(w io.Writer, expenses []core.Expense) error {
	tmpl, err := template.ParseFS(templateFS, "report.html.tmpl")
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	total := core.TotalSpending(expenses)
	data := reportData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		NumExpenses: len(expenses),
		Total:       total.String(),
		Average:     core.AverageExpense(expenses).String(),
		MinDate:     "N/A",
		MaxDate:     "N/A",
	}
	if min, max, ok := core.DateRange(expenses); ok {
		data.MinDate = min.String()
		data.MaxDate = max.String()
	}

	for _, ca := range core.SortedCategoryTotals(expenses) {
		data.Categories = append(data.Categories, categoryRow{
			Name:    ca.Name,
			Amount:  ca.Amount.String(),
			Percent: core.PercentOfTotal(ca.Amount, total),
		})
	}

	sorted := make([]core.Expense, len(expenses))
	copy(sorted, expenses)
	core.SortByDateDesc(sorted)
	for _, e := range sorted {
		data.Expenses = append(data.Expenses, expenseRow{
			Date:        e.Date.String(),
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount.String(),
		})
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// GenerateFile writes the report to the named file via temp-file rename so a
// reader never sees a half-written report.
func GenerateFile(path string, expenses []core.Expense) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	if err := Generate(f, expenses); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close report file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}
	return nil
}

// DefaultFilename returns the dated default report name,
// e.g. "expense_report_20251024.html".
func DefaultFilename() string {
	return fmt.Sprintf("expense_report_%s.html", time.Now().Format("20060102"))
}
