// Package timeutil provides date helpers for application deadlines.
// Checklist due dates are day-granular: an item due "in 14 days" is due
// at the end of that calendar day in UTC.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// StartOfDay returns the start of the day (00:00:00) in UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in UTC.
func EndOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 999999999, time.UTC)
}

// DueIn returns the deadline for an item due the given number of days
// after now: the end of that calendar day.
func DueIn(now time.Time, days int) time.Time {
	return EndOfDay(now.AddDate(0, 0, days))
}

// DaysUntil returns the whole days from now until the deadline, negative
// when overdue.
func DaysUntil(now, due time.Time) int {
	return int(StartOfDay(due).Sub(StartOfDay(now)).Hours() / 24)
}

// IsOverdue reports whether the deadline has passed.
func IsOverdue(now, due time.Time) bool {
	return now.After(due)
}
