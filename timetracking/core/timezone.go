package core

import (
	"fmt"
	"time"

	"axiapac.com/timetracker/utils"
)

// TimeZone maps stored UTC instants onto the business's local calendar.
// All day bucketing happens in local time.
type TimeZone struct {
	loc *time.Location
}

func LoadTimeZone(name string) (*TimeZone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %s: %w", name, err)
	}
	return &TimeZone{loc: loc}, nil
}

func NewTimeZone(loc *time.Location) *TimeZone {
	return &TimeZone{loc: loc}
}

func (tz *TimeZone) Location() *time.Location {
	return tz.loc
}

func (tz *TimeZone) ToLocal(instant time.Time) time.Time {
	return instant.In(tz.loc)
}

// ToUTC reads the wall clock of local as business time, ignoring local's own
// location. A wall time repeated when clocks go back resolves to its first
// occurrence. One skipped when clocks go forward is normalized forward.
func (tz *TimeZone) ToUTC(local time.Time) time.Time {
	return utils.WallTime(local, tz.loc).UTC()
}

// LocalDate is the business calendar date of instant, as midnight UTC.
func (tz *TimeZone) LocalDate(instant time.Time) time.Time {
	return utils.DateOf(instant.In(tz.loc))
}

// DayBounds returns [start, end) in UTC for a local calendar date. The span
// is 23 or 25 hours on DST transition days.
func (tz *TimeZone) DayBounds(date time.Time) (time.Time, time.Time) {
	start := tz.ToUTC(utils.DateOf(date))
	end := tz.ToUTC(utils.DateOf(date).AddDate(0, 0, 1))
	return start.UTC(), end.UTC()
}
