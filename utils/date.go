package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	return t
}

// ParseDate parses a yyyy-MM-dd calendar date as midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return t, nil
}

// DateOf drops the clock part of t, keeping t's own calendar day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WallTime reads the wall clock of wall in loc, ignoring wall's own location.
// A wall time repeated when clocks go back resolves to its earlier occurrence.
// A wall time skipped when clocks go forward is normalized forward.
func WallTime(wall time.Time, loc *time.Location) time.Time {
	naive := time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), time.UTC)

	_, before := naive.Add(-24 * time.Hour).In(loc).Zone()
	_, after := naive.Add(24 * time.Hour).In(loc).Zone()

	var earliest time.Time
	for _, offset := range []int{before, after} {
		candidate := naive.Add(-time.Duration(offset) * time.Second)
		local := candidate.In(loc)
		if local.Hour() != naive.Hour() || local.Minute() != naive.Minute() || local.Day() != naive.Day() {
			continue
		}
		if earliest.IsZero() || candidate.Before(earliest) {
			earliest = candidate
		}
	}
	if earliest.IsZero() {
		// skipped: keep the offset in force before the jump
		earliest = naive.Add(-time.Duration(before) * time.Second)
	}
	return earliest.In(loc)
}

func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseISOTime parses an ISO 8601 timestamp. Values without an offset are
// read in loc.
func ParseISOTime(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	// Try standard RFC3339 format (ISO 8601)
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	// Try with nanoseconds (e.g. 2025-10-13T09:30:00.123Z)
	t, err = time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return &t, nil
	}

	// Try fallback common formats
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04",
	}
	for _, layout := range layouts {
		if tt, e := time.Parse(layout, s); e == nil {
			tt = WallTime(tt, loc)
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}
