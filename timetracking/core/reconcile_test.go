package core

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"axiapac.com/timetracker/timetracking/model"
	"axiapac.com/timetracker/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workDay = utils.MustParseDate("2024-05-01")

func at(hhmm string) time.Time {
	d, err := ParseTimeOfDay(hhmm)
	if err != nil {
		panic(err)
	}
	return workDay.Add(d)
}

var eventSeq int

func ev(kind model.PunchKind, hhmm string) model.PunchEvent {
	eventSeq++
	return model.PunchEvent{
		ID:         fmt.Sprintf("ev-%03d", eventSeq),
		EmployeeID: "emp-1",
		Kind:       kind,
		Instant:    at(hhmm),
	}
}

// pastDay reconciles workDay as seen two days later.
func pastDay(events ...model.PunchEvent) ReconcileInput {
	return ReconcileInput{
		EmployeeID: "emp-1",
		Date:       workDay,
		Events:     events,
		Now:        workDay.Add(48 * time.Hour),
		Today:      workDay.AddDate(0, 0, 2),
	}
}

// sameDay reconciles workDay at the given wall time on workDay.
func sameDay(now string, events ...model.PunchEvent) ReconcileInput {
	in := pastDay(events...)
	in.Now = at(now)
	in.Today = workDay
	return in
}

func assertHours(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

func TestReconcileBreakAttribution(t *testing.T) {
	r := Reconcile(pastDay(
		ev(model.PunchIn, "09:00"),
		ev(model.BreakStart, "12:00"),
		ev(model.BreakEnd, "12:30"),
		ev(model.PunchOut, "17:00"),
	))

	assertHours(t, "8.00", r.Session.TotalHours)
	assertHours(t, "7.50", r.Session.WorkingHours)
	assertHours(t, "30.00", r.Session.BreakDuration)
	assert.Equal(t, model.StatusComplete, r.Session.Status)
	assert.Equal(t, at("12:00"), *r.Session.BreakStart)
	assert.Equal(t, at("12:30"), *r.Session.BreakEnd)

	require.Len(t, r.Cycles, 1)
	assertHours(t, "8.00", r.Cycles[0].DurationHours)
	assert.Equal(t, r.Session.ID, r.Cycles[0].WorkSessionID)
}

func TestReconcilePositionalPairing(t *testing.T) {
	r := Reconcile(pastDay(
		ev(model.PunchIn, "09:00"),
		ev(model.PunchIn, "09:30"),
		ev(model.PunchOut, "17:00"),
	))

	require.Len(t, r.Cycles, 2)
	assert.Equal(t, at("09:00"), r.Cycles[0].PunchIn)
	require.NotNil(t, r.Cycles[0].PunchOut)
	assert.Equal(t, at("17:00"), *r.Cycles[0].PunchOut)
	assert.Equal(t, at("09:30"), r.Cycles[1].PunchIn)
	assert.Nil(t, r.Cycles[1].PunchOut)
	assert.True(t, r.Cycles[1].DurationHours.IsZero())

	assert.Equal(t, model.StatusInProgress, r.Session.Status)
	assertHours(t, "8.00", r.Session.WorkingHours)
	assertHours(t, "8.00", r.Session.TotalHours)
}

func TestReconcileMultipleCycles(t *testing.T) {
	in := ev(model.PunchIn, "09:20")
	in.IsLate = true
	firstOut := ev(model.PunchOut, "12:00")
	firstOut.IsEarly = true
	secondIn := ev(model.PunchIn, "13:00")
	lastOut := ev(model.PunchOut, "17:00")

	r := Reconcile(pastDay(in, firstOut, secondIn, lastOut))

	assertHours(t, "6.67", r.Session.WorkingHours)
	assertHours(t, "7.67", r.Session.TotalHours)
	assert.True(t, r.Session.IsLateIn)
	assert.False(t, r.Session.IsEarlyOut, "early flag comes from the last punch-out")

	require.Len(t, r.Cycles, 2)
	assert.True(t, r.Cycles[0].IsLateIn)
	assert.True(t, r.Cycles[0].IsEarlyOut)
	assert.False(t, r.Cycles[1].IsLateIn)
	assert.False(t, r.Cycles[1].IsEarlyOut)
	assertHours(t, "2.67", r.Cycles[0].DurationHours)
	assertHours(t, "4.00", r.Cycles[1].DurationHours)
}

func TestReconcileBreakOutsideCycle(t *testing.T) {
	tests := []struct {
		name    string
		events  []model.PunchEvent
		working string
		breaks  string
	}{
		{
			name: "Break ends after punch out",
			events: []model.PunchEvent{
				ev(model.PunchIn, "09:00"),
				ev(model.BreakStart, "16:30"),
				ev(model.PunchOut, "17:00"),
				ev(model.BreakEnd, "17:30"),
			},
			working: "8.00",
			breaks:  "0.00",
		},
		{
			name: "Break starts before punch in",
			events: []model.PunchEvent{
				ev(model.BreakStart, "08:00"),
				ev(model.BreakEnd, "08:30"),
				ev(model.PunchIn, "09:00"),
				ev(model.PunchOut, "17:00"),
			},
			working: "8.00",
			breaks:  "0.00",
		},
		{
			name: "Unmatched break start in closed cycle",
			events: []model.PunchEvent{
				ev(model.PunchIn, "09:00"),
				ev(model.BreakStart, "12:00"),
				ev(model.PunchOut, "17:00"),
			},
			working: "8.00",
			breaks:  "0.00",
		},
		{
			name: "Break in second cycle only",
			events: []model.PunchEvent{
				ev(model.PunchIn, "08:00"),
				ev(model.PunchOut, "12:00"),
				ev(model.PunchIn, "13:00"),
				ev(model.BreakStart, "15:00"),
				ev(model.BreakEnd, "15:15"),
				ev(model.PunchOut, "17:00"),
			},
			working: "7.75",
			breaks:  "15.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reconcile(pastDay(tt.events...))
			assertHours(t, tt.working, r.Session.WorkingHours)
			assertHours(t, tt.breaks, r.Session.BreakDuration)
		})
	}
}

func TestReconcileOngoing(t *testing.T) {
	tests := []struct {
		name    string
		input   ReconcileInput
		working string
		total   string
		breaks  string
		status  model.SessionStatus
	}{
		{
			name:    "Clocked in this morning",
			input:   sameDay("12:00", ev(model.PunchIn, "09:00")),
			working: "3.00",
			total:   "3.00",
			breaks:  "0.00",
			status:  model.StatusInProgress,
		},
		{
			name: "On an open break",
			input: sameDay("11:30",
				ev(model.PunchIn, "09:00"),
				ev(model.BreakStart, "11:00"),
			),
			working: "2.00",
			total:   "2.50",
			breaks:  "30.00",
			status:  model.StatusOnBreak,
		},
		{
			name: "Second cycle open, measured from last punch in",
			input: sameDay("15:00",
				ev(model.PunchIn, "09:00"),
				ev(model.PunchOut, "12:00"),
				ev(model.PunchIn, "13:00"),
			),
			working: "5.00",
			total:   "6.00",
			breaks:  "0.00",
			status:  model.StatusInProgress,
		},
		{
			name: "Open break older than last punch in is ignored",
			input: sameDay("15:00",
				ev(model.PunchIn, "09:00"),
				ev(model.BreakStart, "10:00"),
				ev(model.PunchOut, "12:00"),
				ev(model.PunchIn, "13:00"),
			),
			working: "5.00",
			total:   "6.00",
			breaks:  "0.00",
			status:  model.StatusOnBreak,
		},
		{
			name:    "Open cycle on a past day has no ongoing time",
			input:   pastDay(ev(model.PunchIn, "09:00")),
			working: "0.00",
			total:   "0.00",
			breaks:  "0.00",
			status:  model.StatusInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reconcile(tt.input)
			assertHours(t, tt.working, r.Session.WorkingHours)
			assertHours(t, tt.total, r.Session.TotalHours)
			assertHours(t, tt.breaks, r.Session.BreakDuration)
			assert.Equal(t, tt.status, r.Session.Status)
		})
	}
}

func TestReconcileNegativeDurationGuard(t *testing.T) {
	r := Reconcile(pastDay(
		ev(model.PunchOut, "08:00"),
		ev(model.PunchIn, "09:00"),
	))

	require.Len(t, r.Cycles, 1)
	assert.True(t, r.Cycles[0].DurationHours.IsZero())
	assert.True(t, r.Session.WorkingHours.IsZero())
	assert.True(t, r.Session.TotalHours.IsZero())
	assert.Equal(t, model.StatusComplete, r.Session.Status)
}

func TestReconcileOverlappingPunchesClampToTotal(t *testing.T) {
	r := Reconcile(pastDay(
		ev(model.PunchIn, "09:00"),
		ev(model.PunchIn, "10:00"),
		ev(model.PunchOut, "11:00"),
		ev(model.PunchOut, "12:00"),
	))

	assertHours(t, "3.00", r.Session.TotalHours)
	assertHours(t, "3.00", r.Session.WorkingHours)
	require.Len(t, r.Cycles, 2)
	assertHours(t, "2.00", r.Cycles[0].DurationHours)
	assertHours(t, "2.00", r.Cycles[1].DurationHours)
}

func TestReconcileIsDeterministic(t *testing.T) {
	events := []model.PunchEvent{
		ev(model.PunchIn, "09:00"),
		ev(model.BreakStart, "12:00"),
		ev(model.BreakEnd, "12:45"),
		ev(model.PunchOut, "17:10"),
	}
	shuffled := []model.PunchEvent{events[3], events[1], events[0], events[2]}

	first := Reconcile(pastDay(events...))
	second := Reconcile(pastDay(events...))
	third := Reconcile(pastDay(shuffled...))

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.Equal(t, SessionID("emp-1", workDay), first.Session.ID)
}

func TestReconcileNoEvents(t *testing.T) {
	r := Reconcile(pastDay())
	assert.Equal(t, model.StatusComplete, r.Session.Status)
	assert.Nil(t, r.Session.PunchIn)
	assert.True(t, r.Session.TotalHours.IsZero())
	assert.Empty(t, r.Cycles)
}

func TestReconcileHoursNeverExceedTotal(t *testing.T) {
	kinds := []model.PunchKind{model.PunchIn, model.PunchOut, model.BreakStart, model.BreakEnd}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		n := rng.Intn(10)
		events := make([]model.PunchEvent, 0, n)
		for j := 0; j < n; j++ {
			e := ev(kinds[rng.Intn(len(kinds))], "00:00")
			e.Instant = workDay.Add(time.Duration(rng.Intn(24*60)) * time.Minute)
			events = append(events, e)
		}

		var input ReconcileInput
		if rng.Intn(2) == 0 {
			input = pastDay(events...)
		} else {
			input = sameDay("23:59", events...)
		}

		r := Reconcile(input)
		s := r.Session
		assert.False(t, s.WorkingHours.IsNegative(), "case %d", i)
		assert.False(t, s.TotalHours.IsNegative(), "case %d", i)
		assert.False(t, s.BreakDuration.IsNegative(), "case %d", i)
		assert.True(t, s.WorkingHours.LessThanOrEqual(s.TotalHours), "case %d: working %s total %s", i, s.WorkingHours, s.TotalHours)
		for _, c := range r.Cycles {
			assert.False(t, c.DurationHours.IsNegative(), "case %d", i)
		}
	}
}
