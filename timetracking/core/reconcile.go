package core

import (
	"sort"
	"time"

	"axiapac.com/timetracker/timetracking/model"
	"axiapac.com/timetracker/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	sessionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("axiapac.com/timetracker/work-session"))
	cycleNamespace   = uuid.NewSHA1(uuid.NameSpaceURL, []byte("axiapac.com/timetracker/punch-cycle"))
)

// SessionID is stable per employee and local date so concurrent creators
// collide on the primary key instead of producing two sessions.
func SessionID(employeeID string, date time.Time) string {
	return uuid.NewSHA1(sessionNamespace, []byte(DayKey(employeeID, date))).String()
}

func cycleID(sessionID, punchInEventID string) string {
	return uuid.NewSHA1(cycleNamespace, []byte(sessionID+"|"+punchInEventID)).String()
}

type ReconcileInput struct {
	EmployeeID string
	Date       time.Time // local business date
	Events     []model.PunchEvent
	Now        time.Time
	Today      time.Time // local business date of Now
}

type Reconciliation struct {
	Session model.WorkSession
	Cycles  []model.PunchCycle
}

type punchStreams struct {
	ins, outs, starts, ends []model.PunchEvent
}

func partition(events []model.PunchEvent) punchStreams {
	sorted := make([]model.PunchEvent, len(events))
	copy(sorted, events)
	sortEvents(sorted)

	byKind := utils.GroupBy(sorted, func(e model.PunchEvent) model.PunchKind { return e.Kind })
	return punchStreams{
		ins:    byKind[model.PunchIn],
		outs:   byKind[model.PunchOut],
		starts: byKind[model.BreakStart],
		ends:   byKind[model.BreakEnd],
	}
}

// sortEvents orders by instant, then by insertion.
func sortEvents(events []model.PunchEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Instant.Equal(b.Instant) {
			return a.Instant.Before(b.Instant)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func hours(d time.Duration) decimal.Decimal {
	return decimal.NewFromFloat(d.Hours()).Round(2)
}

func minutes(d time.Duration) decimal.Decimal {
	return decimal.NewFromFloat(d.Minutes()).Round(2)
}

// attributedBreak sums the positionally paired breaks that start inside
// [in, out] and also end by out.
func attributedBreak(s punchStreams, in, out time.Time) time.Duration {
	var total time.Duration
	for j := 0; j < len(s.starts) && j < len(s.ends); j++ {
		start, end := s.starts[j].Instant, s.ends[j].Instant
		if start.Before(in) || start.After(out) || end.After(out) {
			continue
		}
		total += nonNegative(end.Sub(start))
	}
	return total
}

// Reconcile derives a day's session and cycles from its events. It is a pure
// function of its input; the same input always yields the same output.
func Reconcile(in ReconcileInput) Reconciliation {
	s := partition(in.Events)
	sessionID := SessionID(in.EmployeeID, in.Date)

	session := model.WorkSession{
		ID:         sessionID,
		EmployeeID: in.EmployeeID,
		Date:       utils.DateOf(in.Date),
		Status:     model.StatusComplete,
	}

	if len(s.ins) > 0 {
		session.PunchIn = utils.Ptr(s.ins[0].Instant)
		session.IsLateIn = s.ins[0].IsLate
	}
	if len(s.outs) > 0 {
		last := s.outs[len(s.outs)-1]
		session.PunchOut = utils.Ptr(last.Instant)
		session.IsEarlyOut = last.IsEarly
	}
	if len(s.starts) > 0 {
		session.BreakStart = utils.Ptr(s.starts[0].Instant)
	}
	if len(s.ends) > 0 {
		session.BreakEnd = utils.Ptr(s.ends[len(s.ends)-1].Instant)
	}

	var working, breaks time.Duration
	for i := 0; i < len(s.ins) && i < len(s.outs); i++ {
		punchIn, punchOut := s.ins[i].Instant, s.outs[i].Instant
		cycleBreak := attributedBreak(s, punchIn, punchOut)
		breaks += cycleBreak
		working += nonNegative(punchOut.Sub(punchIn) - cycleBreak)
	}

	open := len(s.ins) > len(s.outs)
	ongoing := open && utils.SameDate(in.Date, in.Today)
	if ongoing {
		lastIn := s.ins[len(s.ins)-1].Instant
		elapsed := nonNegative(in.Now.Sub(lastIn))

		var openBreak time.Duration
		if len(s.starts) > len(s.ends) {
			lastStart := s.starts[len(s.starts)-1].Instant
			if !lastStart.Before(lastIn) {
				openBreak = nonNegative(in.Now.Sub(lastStart))
			}
		}
		breaks += openBreak
		working += nonNegative(elapsed - openBreak)
	}

	var total time.Duration
	if session.PunchIn != nil {
		switch {
		case ongoing:
			total = nonNegative(in.Now.Sub(*session.PunchIn))
		case session.PunchOut != nil:
			total = nonNegative(session.PunchOut.Sub(*session.PunchIn))
		}
	}
	if working > total {
		working = total
	}

	session.TotalHours = hours(total)
	session.WorkingHours = hours(working)
	session.BreakDuration = minutes(breaks)

	switch {
	case !open:
		session.Status = model.StatusComplete
	case len(s.starts) > len(s.ends):
		session.Status = model.StatusOnBreak
	default:
		session.Status = model.StatusInProgress
	}

	cycles := make([]model.PunchCycle, 0, len(s.ins))
	for i, punchIn := range s.ins {
		c := model.PunchCycle{
			ID:            cycleID(sessionID, punchIn.ID),
			WorkSessionID: sessionID,
			PunchIn:       punchIn.Instant,
			IsLateIn:      punchIn.IsLate,
			DurationHours: decimal.Zero,
		}
		if i < len(s.outs) {
			out := s.outs[i]
			c.PunchOut = utils.Ptr(out.Instant)
			c.IsEarlyOut = out.IsEarly
			c.DurationHours = hours(nonNegative(out.Instant.Sub(punchIn.Instant)))
		}
		cycles = append(cycles, c)
	}

	return Reconciliation{Session: session, Cycles: cycles}
}

func sameCycles(a, b []model.PunchCycle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].SameState(b[i]) {
			return false
		}
	}
	return true
}
