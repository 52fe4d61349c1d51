// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// AddDays does calendar-date arithmetic, discarding time of day so a run is
// stable regardless of when in the day it fires.
func AddDays(t time.Time, days int) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, days)
}

// DateString formats a date the way it is stored and compared (yyyy-mm-dd).
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateUK renders a date for customers, e.g. "12 Jan 2026".
// Nil dates render as empty, never as a null literal.
func FormatDateUK(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2 Jan 2006")
}
