package core

import (
	"time"

	"axiapac.com/timetracker/timetracking/model"
	"github.com/shopspring/decimal"
)

const maxSessionSpan = 24 * time.Hour

// SessionEdit is a manual correction. Nil fields clear the stored value.
type SessionEdit struct {
	PunchIn  *time.Time
	PunchOut *time.Time
	Note     *string
}

func (e SessionEdit) Validate() error {
	if e.PunchIn == nil || e.PunchOut == nil {
		return nil
	}
	if e.PunchIn.After(*e.PunchOut) {
		return validationf("Punch in time cannot be after Punch out time.")
	}
	if e.PunchOut.Sub(*e.PunchIn) > maxSessionSpan {
		return validationf("Punch in and Punch out time cannot exceed 24 hours.")
	}
	return nil
}

// ApplyEdit overwrites the session as a single span with no break
// deduction. Cycles are left as they are.
func ApplyEdit(s *model.WorkSession, edit SessionEdit, policy Policy, tz *TimeZone) {
	s.PunchIn = utcPtr(edit.PunchIn)
	s.PunchOut = utcPtr(edit.PunchOut)
	s.Note = edit.Note

	s.IsLateIn = s.PunchIn != nil && policy.IsLate(tz.ToLocal(*s.PunchIn))
	s.IsEarlyOut = s.PunchOut != nil && policy.IsEarly(tz.ToLocal(*s.PunchOut))

	if s.PunchOut != nil {
		s.Status = model.StatusComplete
	} else {
		s.Status = model.StatusInProgress
	}

	if s.PunchIn != nil && s.PunchOut != nil {
		span := hours(nonNegative(s.PunchOut.Sub(*s.PunchIn)))
		s.TotalHours = span
		s.WorkingHours = span
	} else {
		s.TotalHours = decimal.Zero
		s.WorkingHours = decimal.Zero
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
