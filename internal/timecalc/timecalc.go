// Package timecalc holds the calendar arithmetic shared by the timesheet and
// utilization code.
package timecalc

import (
	"fmt"
	"time"
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM month string.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM)", s)
	}
	return t.Year(), t.Month(), nil
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// InMonth reports whether t falls in the given year and month.
func InMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

// WeekStart returns the most recent Sunday at 00:00:00. Timesheet weeks run
// Sunday through Saturday.
func WeekStart(t time.Time) time.Time {
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return StartOfDay(sunday)
}

// IsWeekday reports whether t is Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// BusinessDaysInMonth counts the weekday (Mon–Fri) dates in the given month
// by walking the calendar.
func BusinessDaysInMonth(year int, month time.Month) int {
	days := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if IsWeekday(d) {
			days++
		}
	}
	return days
}
