package types

import (
	"fmt"
	"strings"
	"time"
)

// DayWindow is one calendar day of a report timezone expressed as the
// half-open UTC interval [Start, End). Date is that calendar day at midnight
// UTC, which is how report dates are stored.
type DayWindow struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

// NewDayWindow builds the window for the calendar date of day (read in its own
// location) as observed in loc.
func NewDayWindow(day time.Time, loc *time.Location) DayWindow {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := day.Date()
	local := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return DayWindow{
		Date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Start: local.UTC(),
		End:   local.AddDate(0, 0, 1).UTC(),
	}
}

// Contains reports whether instant t falls inside the window.
func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// String renders the calendar date as YYYY-MM-DD.
func (w DayWindow) String() string {
	return w.Date.Format(time.DateOnly)
}

// ParseDate parses a YYYY-MM-DD calendar date into midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", raw)
	}
	return parsed, nil
}

// NormalizeDate truncates t to its calendar date at midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange lists the calendar dates from..to inclusive at midnight UTC.
func DateRange(from, to time.Time, maxDays int) ([]time.Time, error) {
	start, end := NormalizeDate(from), NormalizeDate(to)
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s is before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if maxDays > 0 && len(dates) == maxDays {
			return nil, fmt.Errorf("range exceeds %d days", maxDays)
		}
		dates = append(dates, d)
	}
	return dates, nil
}
