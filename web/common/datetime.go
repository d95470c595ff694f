package common

import (
	"encoding/json"
	"time"

	"axiapac.com/timetracker/utils"
)

// LocalDateTime accepts RFC 3339 instants or offset-less wall-clock times
// ("2006-01-02T15:04:05"). Zoned reports which form was sent so callers can
// place wall-clock values in the business time zone.
type LocalDateTime struct {
	time.Time
	Zoned bool
}

const dateTimeLayout = "2006-01-02T15:04:05"

func (l *LocalDateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		l.Time, l.Zoned = time.Time{}, false
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		l.Time, l.Zoned = t, true
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return err
	}
	l.Time, l.Zoned = t, false
	return nil
}

func (l LocalDateTime) MarshalJSON() ([]byte, error) {
	if l.Time.IsZero() {
		return json.Marshal("")
	}
	if l.Zoned {
		return json.Marshal(l.Format(time.RFC3339))
	}
	return json.Marshal(l.Format(dateTimeLayout))
}

// In resolves the value to an instant, reading wall-clock values in loc.
// A wall-clock value in the hour repeated when clocks go back takes its first
// occurrence. A nil or empty value gives nil.
func (l *LocalDateTime) In(loc *time.Location) *time.Time {
	if l == nil || l.Time.IsZero() {
		return nil
	}
	if l.Zoned {
		t := l.Time.UTC()
		return &t
	}
	t := utils.WallTime(l.Time, loc).UTC()
	return &t
}
