package dates

import (
	"errors"
	"time"
)

// Layout is the wire format for every calendar date the API exchanges.
const Layout = "02/01/2006" // DD/MM/YYYY

var ErrInvalidDate = errors.New("invalid date")

// Parse converts a DD/MM/YYYY string into a time.Time. time.Parse already
// rejects impossible dates such as 31/02/2024.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Valid reports whether s is a well-formed DD/MM/YYYY date.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Format renders t in the wire format.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// WithinPeriod reports whether due falls on or before now plus the given
// number of days. The reference point is the evaluation-time clock, not
// the supplied borrow date.
func WithinPeriod(due, now time.Time, days int) bool {
	bound := now.AddDate(0, 0, days)
	// Compare at day granularity so the time-of-day of "now" is irrelevant.
	bound = time.Date(bound.Year(), bound.Month(), bound.Day(), 0, 0, 0, 0, time.UTC)
	return !due.After(bound)
}
