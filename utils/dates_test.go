package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddDays(t *testing.T) {
	start := time.Date(2026, time.January, 13, 15, 30, 0, 0, time.UTC)

	got := AddDays(start, 30)
	assert.Equal(t, time.Date(2026, time.February, 12, 0, 0, 0, 0, time.UTC), got)

	// Time of day is discarded before the arithmetic
	assert.Equal(t, AddDays(BeginningOfDay(start), 30), got)

	// Negative offsets work for after-due chasers
	assert.Equal(t, time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC), AddDays(start, -7))
}

func TestAddDaysCrossesYearBoundary(t *testing.T) {
	start := time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC), AddDays(start, 30))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, time.January, 13, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.February, 12, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, DaysBetween(a, b))
	assert.Equal(t, -30, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDateString(t *testing.T) {
	d := time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-03", DateString(d))
}

func TestFormatDateUK(t *testing.T) {
	d := time.Date(2026, time.February, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "12 Feb 2026", FormatDateUK(&d))
	assert.Equal(t, "", FormatDateUK(nil))
}
