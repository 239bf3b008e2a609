package domain

import "time"

// TimeRange is an inclusive interval of instants.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range (inclusive on both ends).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// HourWindow returns the inclusive range covering the clock hour that
// contains t, in t's location: floor to the hour, ceil to the last
// nanosecond of that hour.
func HourWindow(t time.Time) TimeRange {
	start := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return TimeRange{Start: start, End: start.Add(time.Hour - time.Nanosecond)}
}

// DayWindow returns the inclusive range covering the calendar day that
// contains t, in t's location.
func DayWindow(t time.Time) TimeRange {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}

// SubtractDays returns the instant n calendar days before t.
func SubtractDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, -n)
}

// IsBefore reports whether a is strictly before b.
func IsBefore(a, b time.Time) bool {
	return a.Before(b)
}
