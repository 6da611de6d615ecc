package core

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

type (
	// Date is a calendar day. Its canonical string form is ISO YYYY-MM-DD,
	// so lexicographic and chronological order coincide.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is a single dated monetary record. Records are immutable after
	// creation; there is no update operation, only add and delete.
	Expense struct {
		ID          string
		Date        Date
		Amount      Money
		Category    string
		Description string
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

// DateLayout is the canonical wire and storage format for dates.
const DateLayout = "2006-01-02"

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// InMonth reports whether the date falls in the given year and month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// NormalizeCategory trims a free-text label and title-cases each word, so
// "food" and "FOOD" both land on the "Food" bucket.
func NormalizeCategory(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
