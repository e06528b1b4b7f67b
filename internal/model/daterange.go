package model

import "time"

// DateRange bounds a fetch by inclusive calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DefaultRange returns the year-to-date range: January 1 of the current
// year through today.
func DefaultRange(now time.Time) DateRange {
	now = now.UTC()
	return DateRange{
		Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// StartInstant resolves the start date to the first instant of that day.
// Boundaries are pinned to UTC; the request carries an explicit offset, so
// the API side is unambiguous regardless of its internal zone.
func (r DateRange) StartInstant() time.Time {
	return StartOfDay(r.Start)
}

// EndInstant resolves the end date to the last second of that day.
func (r DateRange) EndInstant() time.Time {
	return EndOfDay(r.End)
}

// Valid reports whether the start bound does not come after the end bound.
func (r DateRange) Valid() bool {
	return !r.StartInstant().After(r.EndInstant())
}

// StartOfDay returns 00:00:00 UTC on t's calendar date.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns 23:59:59 UTC on t's calendar date.
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}
