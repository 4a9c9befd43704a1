package domain

import (
	"fmt"
	"time"
)

// Period identifies one accounting month in "YYYY-MM" form, the granularity
// at which balances are kept and exercises are sliced.
type Period string

// ParsePeriod validates and normalizes a YYYY-MM string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("invalid accounting period %q: expected YYYY-MM", s)
	}
	return Period(t.Format("2006-01")), nil
}

// PeriodOf returns the accounting period containing the given date.
func PeriodOf(t time.Time) Period {
	return Period(t.Format("2006-01"))
}

// Year returns the calendar year of the period.
func (p Period) Year() int {
	t, _ := time.Parse("2006-01", string(p))
	return t.Year()
}

// Month returns the calendar month of the period.
func (p Period) Month() time.Month {
	t, _ := time.Parse("2006-01", string(p))
	return t.Month()
}

// Next returns the following accounting period.
func (p Period) Next() Period {
	t, _ := time.Parse("2006-01", string(p))
	return Period(t.AddDate(0, 1, 0).Format("2006-01"))
}

// Before reports whether p is chronologically earlier than other.
// Lexicographic order on the normalized form is chronological order.
func (p Period) Before(other Period) bool {
	return string(p) < string(other)
}

func (p Period) String() string { return string(p) }

// PeriodsBetween returns every period from first through last inclusive, in
// chronological order. Returns nil if last precedes first.
func PeriodsBetween(first, last Period) []Period {
	if last.Before(first) {
		return nil
	}
	var out []Period
	for p := first; !last.Before(p); p = p.Next() {
		out = append(out, p)
	}
	return out
}
