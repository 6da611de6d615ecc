package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"expenses/internal/core"
)

func fixture(t *testing.T) []core.Expense {
	t.Helper()
	d1, err := core.ParseDate("2025-10-22")
	if err != nil {
		t.Fatal(err)
	}
	d2, err := core.ParseDate("2025-10-20")
	if err != nil {
		t.Fatal(err)
	}
	return []core.Expense{
		{ID: "1", Date: d1, Amount: core.Money{Cents: 450}, Category: "Food", Description: "Morning coffee"},
		{ID: "2", Date: d2, Amount: core.Money{Cents: 1275}, Category: "Food", Description: "Lunch <em>downtown</em>"},
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, fixture(t)); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"$17.25", "Morning coffee", "2025-10-22", "Food", "100.0%"} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Descriptions are user input and must come out escaped.
	if strings.Contains(html, "<em>downtown</em>") {
		t.Error("description was not HTML-escaped")
	}
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(buf.String(), "N/A") {
		t.Error("empty report should show N/A for the date range")
	}
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	if err := GenerateFile(path, fixture(t)); err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "$17.25") {
		t.Error("written report missing total")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be gone after rename")
	}
}

func TestDefaultFilename(t *testing.T) {
	name := DefaultFilename()
	if !strings.HasPrefix(name, "expense_report_") || !strings.HasSuffix(name, ".html") {
		t.Errorf("unexpected default filename %q", name)
	}
}
