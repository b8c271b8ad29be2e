package domain

import (
	"fmt"
	"time"
)

// Month identifies one calendar month. It is the reporting window unit: every
// report runs over the half-open interval [Start, NextStart).
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses the "YYYY-MM" form used by the reporting endpoints.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: month must be YYYY-MM", ErrValidation)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the Month containing t, in UTC.
func MonthOf(t time.Time) Month {
	u := t.UTC()
	return Month{Year: u.Year(), Month: u.Month()}
}

// String formats the month as "YYYY-MM".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start returns midnight UTC on the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// NextStart returns midnight UTC on the first day of the following month.
// Together with Start it forms the half-open reporting window.
func (m Month) NextStart() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	return m.NextStart().AddDate(0, 0, -1).Day()
}

// Contains reports whether t falls inside the month window.
func (m Month) Contains(t time.Time) bool {
	u := t.UTC()
	return !u.Before(m.Start()) && u.Before(m.NextStart())
}
