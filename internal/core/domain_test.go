package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2025-10-22" {
		t.Errorf("String() = %q, want %q", d.String(), "2025-10-22")
	}
	if d.Year() != 2025 || d.Month() != 10 {
		t.Errorf("Year/Month = %d/%d, want 2025/10", d.Year(), d.Month())
	}

	for _, bad := range []string{"", "2025-13-01", "2025-02-30", "22/10/2025", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestDateInMonth(t *testing.T) {
	d, _ := ParseDate("2025-10-22")
	if !d.InMonth(2025, 10) {
		t.Error("2025-10-22 should be in 2025-10")
	}
	if d.InMonth(2025, 11) {
		t.Error("2025-10-22 should not be in 2025-11")
	}
	if d.InMonth(2024, 10) {
		t.Error("2025-10-22 should not be in 2024-10")
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Date:        mustDate(t, "2025-10-22"),
		Amount:      Money{Cents: 450},
		Category:    "Food",
		Description: "Morning coffee",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid expense rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(e *Expense)
		want   error
	}{
		{"zero date", func(e *Expense) { e.Date = Date{} }, ErrInvalidDate},
		{"zero amount", func(e *Expense) { e.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount = Money{Cents: -5} }, ErrInvalidAmount},
		{"empty category", func(e *Expense) { e.Category = "  " }, ErrEmptyCategory},
		{"empty description", func(e *Expense) { e.Description = "" }, ErrEmptyDescription},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.mutate(&e)
			err := e.Validate()
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}

	long := valid
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Error("201-char description should be rejected")
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct{ in, want string }{
		{"food", "Food"},
		{"FOOD", "Food"},
		{"  food  ", "Food"},
		{"fast food", "Fast Food"},
		{"Food", "Food"},
	}
	for _, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}
