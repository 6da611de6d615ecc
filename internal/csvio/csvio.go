// Package csvio exports and imports expenses in CSV form.
//
// The format is a header row `date,amount,category,description` followed by
// one row per record, dates in YYYY-MM-DD and amounts as plain decimals.
// Record ids are not exported; an import assigns fresh ones.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"expenses/internal/core"
)

var header = []string{"date", "amount", "category", "description"}

// Export writes expenses to w in CSV form, header first.
func Export(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range expenses {
		row := []string{e.Date.String(), e.Amount.DecimalString(), e.Category, e.Description}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFile writes expenses to the named file, creating or truncating it.
func ExportFile(path string, expenses []core.Expense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := Export(f, expenses); err != nil {
		return err
	}
	return f.Close()
}

// DefaultExportFilename returns the dated default name used when the caller
// does not pick one, e.g. "expenses_export_20251024.csv".
func DefaultExportFilename() string {
	return fmt.Sprintf("expenses_export_%s.csv", time.Now().Format("20060102"))
}

// Import reads CSV rows from r into expenses. A leading header row is
// skipped; ids are left empty for the store to assign.
func Import(r io.Reader) ([]core.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	var out []core.Expense
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(row[0], "date") {
			continue
		}

		date, err := core.ParseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		cents, err := core.ParseDecimalToCents(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		e := core.Expense{
			Date:        date,
			Amount:      core.Money{Cents: cents},
			Category:    row[2],
			Description: row[3],
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// ImportFile reads expenses from the named CSV file.
func ImportFile(path string) ([]core.Expense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return Import(f)
}
