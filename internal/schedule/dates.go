package schedule

import (
	"fmt"
	"time"
)

// DayFormat is the canonical date key format used across the user data
// document: YYYY-MM-DD, no timezone component.
const DayFormat = "2006-01-02"

// ParseDay parses a canonical YYYY-MM-DD string into a UTC midnight
// time. Using UTC midnights keeps day arithmetic immune to DST shifts.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// FormatDay renders a time as its canonical YYYY-MM-DD day key.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// Today returns the current local calendar date as a UTC midnight time.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays moves a day by whole calendar days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// DaysBetween returns to - from in whole calendar days, negative when
// to precedes from. Both are expected at UTC midnight.
func DaysBetween(from, to time.Time) int {
	diff := to.Sub(from)
	days := int(diff / (24 * time.Hour))
	if diff < 0 && diff%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// WeekStart returns the Monday of the week containing the given day.
func WeekStart(t time.Time) time.Time {
	weekday := t.Weekday()
	if weekday == time.Sunday {
		return AddDays(t, -6)
	}
	return AddDays(t, -(int(weekday) - 1))
}
