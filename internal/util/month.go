package util

import "time"

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in the month containing t
func DaysInMonth(t time.Time) int {
	// Day 0 of next month is the last day of this month
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// DaysLeftInMonth returns the days after t until the last day of its month.
// On the last day it returns 0.
func DaysLeftInMonth(t time.Time) int {
	return DaysInMonth(t) - t.Day()
}

// FirstOfMonth returns midnight on the first day of t's month
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysUntilAnchor returns how many days remain until anchorDay comes around,
// treating every month as 30 days long once the anchor has passed
func DaysUntilAnchor(today, anchorDay int) int {
	if anchorDay >= today {
		return anchorDay - today
	}
	return anchorDay + 30 - today
}

// ParseDate parses a YYYY-MM-DD string as a local calendar date
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
