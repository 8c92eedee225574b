// Package time contains calendar helpers for day-granular batch windows
package time

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StartOfDay returns local midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayBounds returns [00:00:00, 24:00:00] of t's calendar day.
// The end is the next midnight; DST days are 23 or 25 hours long
func DayBounds(t time.Time) (start, end time.Time) {
	start = StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

// CalendarDate builds midnight of year-month-day in loc from operator strings.
// It rejects non-numeric parts and dates that do not exist (2024-02-30)
func CalendarDate(year int, month, day string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return time.Time{}, fmt.Errorf("month %q is not a number", month)
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return time.Time{}, fmt.Errorf("day %q is not a number", day)
	}
	if m < 1 || m > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", m)
	}
	t := time.Date(year, time.Month(m), d, 0, 0, 0, 0, loc)
	if d < 1 || t.Month() != time.Month(m) || t.Day() != d {
		return time.Time{}, fmt.Errorf("%04d-%02d-%02d is not a calendar date", year, m, d)
	}
	return t, nil
}

// DayKey is the YYYY-MM-DD label used in logs and lease keys
func DayKey(t time.Time) string { return t.Format(time.DateOnly) }
