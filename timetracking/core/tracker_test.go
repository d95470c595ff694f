package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"axiapac.com/timetracker/timetracking/model"
	"axiapac.com/timetracker/timetracking/testutil"
	"axiapac.com/timetracker/utils"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type fixture struct {
	tracker *Tracker
	db      *gorm.DB
	clock   *utils.FakeClock
	emp     *model.Employee
}

func newFixture(t *testing.T, tz *TimeZone) *fixture {
	t.Helper()
	db := testutil.NewDB(t, Models()...)
	clock := utils.NewFakeClock(workDay.AddDate(0, 0, 2).Add(9 * time.Hour))
	tracker := NewTracker(db, Options{
		TimeZone:    tz,
		Clock:       clock,
		Logger:      testutil.Logger(),
		LockTimeout: time.Second,
	})

	emp, err := tracker.CreateEmployee(context.Background(), model.Employee{Code: "E001", Name: "Alex Chen"})
	require.NoError(t, err)

	return &fixture{tracker: tracker, db: db, clock: clock, emp: emp}
}

func (f *fixture) punch(t *testing.T, kind model.PunchKind, hhmm string) *model.PunchEvent {
	t.Helper()
	instant := at(hhmm)
	event, err := f.tracker.RecordPunch(context.Background(), PunchRequest{
		EmployeeID: f.emp.ID,
		Kind:       kind,
		Instant:    &instant,
	})
	require.NoError(t, err)
	return event
}

func (f *fixture) session(t *testing.T, date time.Time) model.WorkSession {
	t.Helper()
	var s model.WorkSession
	require.NoError(t, f.db.Where("id = ?", SessionID(f.emp.ID, date)).First(&s).Error)
	return s
}

func assertInstant(t *testing.T, want time.Time, got *time.Time) {
	t.Helper()
	if assert.NotNil(t, got) {
		assert.True(t, want.Equal(*got), "want %s, got %s", want, *got)
	}
}

func TestRecordPunchBuildsSession(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()
	_, err := f.tracker.CreateBusinessHours(ctx, *nineToFive(), true)
	require.NoError(t, err)

	in := f.punch(t, model.PunchIn, "09:20")
	f.punch(t, model.BreakStart, "12:00")
	f.punch(t, model.BreakEnd, "12:30")
	out := f.punch(t, model.PunchOut, "16:30")

	assert.True(t, in.IsLate)
	assert.True(t, out.IsEarly)

	s := f.session(t, workDay)
	assert.True(t, utils.SameDate(workDay, s.Date))
	assertInstant(t, at("09:20"), s.PunchIn)
	assertInstant(t, at("16:30"), s.PunchOut)
	assertInstant(t, at("12:00"), s.BreakStart)
	assertInstant(t, at("12:30"), s.BreakEnd)
	assertHours(t, "7.17", s.TotalHours)
	assertHours(t, "6.67", s.WorkingHours)
	assertHours(t, "30.00", s.BreakDuration)
	assert.True(t, s.IsLateIn)
	assert.True(t, s.IsEarlyOut)
	assert.Equal(t, model.StatusComplete, s.Status)

	var cycles []model.PunchCycle
	require.NoError(t, f.db.Where("work_session_id = ?", s.ID).Find(&cycles).Error)
	require.Len(t, cycles, 1)
	assertHours(t, "7.17", cycles[0].DurationHours)
}

func TestRecordPunchWithoutBusinessHours(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))

	in := f.punch(t, model.PunchIn, "11:00")
	out := f.punch(t, model.PunchOut, "12:00")

	assert.False(t, in.IsLate)
	assert.False(t, out.IsEarly)
}

func TestRecordPunchUsesClockWhenInstantMissing(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	now := at("08:45")
	f.clock.Set(now)

	event, err := f.tracker.RecordPunch(context.Background(), PunchRequest{EmployeeID: f.emp.ID, Kind: model.PunchIn})
	require.NoError(t, err)
	assert.True(t, now.Equal(event.Instant))
	assert.Equal(t, time.UTC, event.Instant.Location())
}

func TestRecordPunchErrors(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()

	inactive, err := f.tracker.CreateEmployee(ctx, model.Employee{Code: "E002", Name: "Sam Lee"})
	require.NoError(t, err)
	require.NoError(t, f.tracker.DeactivateEmployee(ctx, inactive.ID))

	tests := []struct {
		name     string
		req      PunchRequest
		notFound bool
		invalid  bool
	}{
		{"unknown employee", PunchRequest{EmployeeID: "missing", Kind: model.PunchIn}, true, false},
		{"inactive employee", PunchRequest{EmployeeID: inactive.ID, Kind: model.PunchIn}, true, false},
		{"bad kind", PunchRequest{EmployeeID: f.emp.ID, Kind: "lunch"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tracker.RecordPunch(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound))
			assert.Equal(t, tt.invalid, IsValidation(err))
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&model.PunchEvent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordPunchBucketsByLocalDate(t *testing.T) {
	f := newFixture(t, mustTimeZone(t, "America/Chicago"))

	// 22:30 CST on the 9th
	instant := time.Date(2024, 3, 10, 4, 30, 0, 0, time.UTC)
	_, err := f.tracker.RecordPunch(context.Background(), PunchRequest{EmployeeID: f.emp.ID, Kind: model.PunchIn, Instant: &instant})
	require.NoError(t, err)

	s := f.session(t, utils.MustParseDate("2024-03-09"))
	assertInstant(t, instant, s.PunchIn)
}

func TestReconcileDayIsIdempotent(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()
	f.punch(t, model.PunchIn, "09:00")
	f.punch(t, model.PunchOut, "17:00")

	before := f.session(t, workDay)

	first, err := f.tracker.ReconcileDay(ctx, f.emp.ID, workDay)
	require.NoError(t, err)
	second, err := f.tracker.ReconcileDay(ctx, f.emp.ID, workDay)
	require.NoError(t, err)

	after := f.session(t, workDay)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
	assert.True(t, before.SameState(after))
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.PunchCycles, 1)
	assert.Equal(t, first.PunchCycles[0].ID, second.PunchCycles[0].ID)

	none, err := f.tracker.ReconcileDay(ctx, f.emp.ID, workDay.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestOngoingSessionTracksClock(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	f.clock.Set(at("09:00"))
	f.punch(t, model.PunchIn, "09:00")

	f.clock.Set(at("12:00"))
	s, err := f.tracker.ReconcileDay(context.Background(), f.emp.ID, workDay)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, s.Status)
	assertHours(t, "3.00", s.WorkingHours)
	assertHours(t, "3.00", s.TotalHours)

	f.clock.Advance(time.Hour)
	s, err = f.tracker.ReconcileDay(context.Background(), f.emp.ID, workDay)
	require.NoError(t, err)
	assertHours(t, "4.00", s.WorkingHours)
	assertHours(t, "4.00", f.session(t, workDay).WorkingHours)
}

func TestCurrentStatus(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()
	f.clock.Set(at("08:00"))

	steps := []struct {
		kind  model.PunchKind
		hhmm  string
		state WorkState
	}{
		{"", "08:00", StateNotStarted},
		{model.PunchIn, "09:00", StateWorking},
		{model.BreakStart, "12:00", StateOnBreak},
		{model.BreakEnd, "12:30", StateWorking},
		{model.PunchOut, "17:00", StateFinished},
	}
	for _, step := range steps {
		f.clock.Set(at(step.hhmm))
		if step.kind != "" {
			_, err := f.tracker.RecordPunch(ctx, PunchRequest{EmployeeID: f.emp.ID, Kind: step.kind})
			require.NoError(t, err)
		}
		status, err := f.tracker.CurrentStatus(ctx, f.emp.ID)
		require.NoError(t, err)
		assert.Equal(t, step.state, status.State, "after %s", step.hhmm)
	}

	// yesterday's events do not carry into today
	f.clock.Set(at("08:00").AddDate(0, 0, 1))
	status, err := f.tracker.CurrentStatus(ctx, f.emp.ID)
	require.NoError(t, err)
	assert.Equal(t, StateNotStarted, status.State)
	assert.Nil(t, status.LastEvent)

	_, err = f.tracker.CurrentStatus(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditSession(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()
	_, err := f.tracker.CreateBusinessHours(ctx, *nineToFive(), true)
	require.NoError(t, err)

	f.punch(t, model.PunchIn, "09:20")
	f.punch(t, model.PunchOut, "17:30")
	id := SessionID(f.emp.ID, workDay)

	note := "forgot to punch"
	edited, err := f.tracker.EditSession(ctx, id, SessionEdit{
		PunchIn:  utils.Ptr(at("08:00")),
		PunchOut: utils.Ptr(at("16:00")),
		Note:     &note,
	})
	require.NoError(t, err)
	assertHours(t, "8.00", edited.TotalHours)
	assertHours(t, "8.00", edited.WorkingHours)
	assert.False(t, edited.IsLateIn)
	assert.True(t, edited.IsEarlyOut)
	assert.Equal(t, model.StatusComplete, edited.Status)
	require.NotNil(t, edited.Note)
	assert.Equal(t, note, *edited.Note)
	assert.Len(t, edited.PunchCycles, 1)

	// a later punch rebuilds the session from events but keeps the note
	f.punch(t, model.PunchIn, "18:00")
	s := f.session(t, workDay)
	assertInstant(t, at("09:20"), s.PunchIn)
	require.NotNil(t, s.Note)
	assert.Equal(t, note, *s.Note)
	assert.Equal(t, model.StatusInProgress, s.Status)
}

func TestEditSessionErrors(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()
	f.punch(t, model.PunchIn, "09:00")
	id := SessionID(f.emp.ID, workDay)

	tests := []struct {
		name string
		id   string
		edit SessionEdit
		want string
	}{
		{"in after out", id, SessionEdit{PunchIn: utils.Ptr(at("17:00")), PunchOut: utils.Ptr(at("09:00"))}, "Punch in time cannot be after Punch out time."},
		{"over a day", id, SessionEdit{PunchIn: utils.Ptr(at("09:00")), PunchOut: utils.Ptr(at("09:01").Add(24 * time.Hour))}, "Punch in and Punch out time cannot exceed 24 hours."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tracker.EditSession(ctx, tt.id, tt.edit)
			require.True(t, IsValidation(err))
			assert.EqualError(t, err, tt.want)
		})
	}

	_, err := f.tracker.EditSession(ctx, "missing", SessionEdit{})
	assert.ErrorIs(t, err, ErrNotFound)

	// clearing leaves an open session with no hours
	cleared, err := f.tracker.EditSession(ctx, id, SessionEdit{})
	require.NoError(t, err)
	assert.Nil(t, cleared.PunchIn)
	assert.Nil(t, cleared.Note)
	assertHours(t, "0.00", cleared.TotalHours)
}

func TestRegenerateSessions(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()
	other, err := f.tracker.CreateEmployee(ctx, model.Employee{Code: "E002", Name: "Sam Lee"})
	require.NoError(t, err)

	// events written without reconciliation, as after an import or restore
	seed := []model.PunchEvent{
		{ID: "r1", EmployeeID: f.emp.ID, Kind: model.PunchIn, Instant: at("09:00")},
		{ID: "r2", EmployeeID: f.emp.ID, Kind: model.PunchOut, Instant: at("17:00")},
		{ID: "r3", EmployeeID: f.emp.ID, Kind: model.PunchIn, Instant: at("09:00").AddDate(0, 0, 1)},
		{ID: "r4", EmployeeID: f.emp.ID, Kind: model.PunchOut, Instant: at("13:00").AddDate(0, 0, 1)},
		{ID: "r5", EmployeeID: other.ID, Kind: model.PunchIn, Instant: at("10:00")},
		{ID: "r6", EmployeeID: other.ID, Kind: model.PunchOut, Instant: at("12:00")},
	}
	require.NoError(t, f.db.Create(&seed).Error)

	only := f.emp.ID
	sessions, err := f.tracker.RegenerateSessions(ctx, RegenerateOptions{EmployeeID: &only, StartDate: workDay, EndDate: workDay.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	sessions, err = f.tracker.RegenerateSessions(ctx, RegenerateOptions{StartDate: workDay, EndDate: workDay.AddDate(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	var count int64
	require.NoError(t, f.db.Model(&model.WorkSession{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
	assertHours(t, "4.00", f.session(t, workDay.AddDate(0, 0, 1)).WorkingHours)

	again, err := f.tracker.RegenerateSessions(ctx, RegenerateOptions{StartDate: workDay, EndDate: workDay.AddDate(0, 0, 1)})
	require.NoError(t, err)
	for i := range again {
		assert.True(t, sessions[i].SameState(again[i]))
	}
}

func TestRegenerateSessionsValidatesRange(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()

	_, err := f.tracker.RegenerateSessions(ctx, RegenerateOptions{StartDate: workDay, EndDate: workDay.AddDate(0, 0, -1)})
	assert.True(t, IsValidation(err))

	_, err = f.tracker.RegenerateSessions(ctx, RegenerateOptions{StartDate: workDay, EndDate: workDay.AddDate(0, 0, maxRegenerateDays)})
	assert.True(t, IsValidation(err))

	sessions, err := f.tracker.RegenerateSessions(ctx, RegenerateOptions{StartDate: workDay, EndDate: workDay})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestBusinessHoursActivation(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()

	active, err := f.tracker.ActiveConfiguration(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	a, err := f.tracker.CreateBusinessHours(ctx, *nineToFive(), true)
	require.NoError(t, err)
	later := nineToFive()
	later.StartTime, later.EndTime = "10:00", "18:00"
	b, err := f.tracker.CreateBusinessHours(ctx, *later, true)
	require.NoError(t, err)
	_, err = f.tracker.CreateBusinessHours(ctx, *nineToFive(), false)
	require.NoError(t, err)

	countActive := func() int64 {
		var n int64
		require.NoError(t, f.db.Model(&model.BusinessHours{}).Where("is_active = ?", true).Count(&n).Error)
		return n
	}

	assert.Equal(t, int64(1), countActive())
	active, err = f.tracker.ActiveConfiguration(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID, active.ID)

	_, err = f.tracker.ActivateBusinessHours(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), countActive())
	active, err = f.tracker.ActiveConfiguration(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, active.ID)

	all, err := f.tracker.ListBusinessHours(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.tracker.ActivateBusinessHours(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	bad := nineToFive()
	bad.StartTime = "9am"
	_, err = f.tracker.CreateBusinessHours(ctx, *bad, true)
	assert.True(t, IsValidation(err))
}

func TestConcurrentPunchesAreSerialized(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		kind := model.PunchIn
		if i%2 == 1 {
			kind = model.PunchOut
		}
		instant := at(fmt.Sprintf("%02d:00", 8+i))
		g.Go(func() error {
			_, err := f.tracker.RecordPunch(ctx, PunchRequest{EmployeeID: f.emp.ID, Kind: kind, Instant: &instant})
			return err
		})
	}
	require.NoError(t, g.Wait())

	var events []model.PunchEvent
	require.NoError(t, f.db.Where("employee_id = ?", f.emp.ID).Find(&events).Error)
	require.Len(t, events, 8)

	var sessions []model.WorkSession
	require.NoError(t, f.db.Find(&sessions).Error)
	require.Len(t, sessions, 1)

	want := Reconcile(ReconcileInput{
		EmployeeID: f.emp.ID,
		Date:       workDay,
		Events:     events,
		Now:        f.clock.Now(),
		Today:      f.tracker.TimeZone().LocalDate(f.clock.Now()),
	})
	assert.True(t, want.Session.SameState(sessions[0]))
	assertHours(t, "4.00", sessions[0].WorkingHours)

	var cycles int64
	require.NoError(t, f.db.Model(&model.PunchCycle{}).Count(&cycles).Error)
	assert.Equal(t, int64(4), cycles)
}

func TestLockTimeoutIsConflict(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	f.tracker.lockTimeout = 20 * time.Millisecond

	release, err := f.tracker.locks.Acquire(context.Background(), DayKey(f.emp.ID, workDay))
	require.NoError(t, err)
	defer release()

	instant := at("09:00")
	_, err = f.tracker.RecordPunch(context.Background(), PunchRequest{EmployeeID: f.emp.ID, Kind: model.PunchIn, Instant: &instant})
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, f.db.Model(&model.PunchEvent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFailedReconcileRollsBackPunch(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	f.punch(t, model.PunchIn, "09:00")
	before := f.session(t, workDay)

	require.NoError(t, f.db.Migrator().DropTable(&model.PunchCycle{}))

	instant := at("17:00")
	_, err := f.tracker.RecordPunch(context.Background(), PunchRequest{EmployeeID: f.emp.ID, Kind: model.PunchOut, Instant: &instant})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, f.db.Model(&model.PunchEvent{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	after := f.session(t, workDay)
	assert.True(t, before.SameState(after))
	assert.Equal(t, model.StatusInProgress, after.Status)
	assert.Nil(t, after.PunchOut)
}

func TestDatabaseLockConflictIsRetried(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()
	deadlock := &gomysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}

	calls := 0
	err := f.tracker.serialized(ctx, DayKey(f.emp.ID, workDay), func(tx *gorm.DB) error {
		calls++
		if calls == 1 {
			return deadlock
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	err = f.tracker.serialized(ctx, DayKey(f.emp.ID, workDay), func(tx *gorm.DB) error {
		calls++
		return fmt.Errorf("failed to create work session: %w", deadlock)
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 2, calls)
}

func TestConflictIsRetriedOnce(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	f.tracker.lockTimeout = 100 * time.Millisecond

	release, err := f.tracker.locks.Acquire(context.Background(), DayKey(f.emp.ID, workDay))
	require.NoError(t, err)
	go func() {
		time.Sleep(150 * time.Millisecond)
		release()
	}()

	f.punch(t, model.PunchIn, "09:00")
	assert.Equal(t, model.StatusInProgress, f.session(t, workDay).Status)
}

func TestListSessionsAndEvents(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()
	f.punch(t, model.PunchIn, "09:00")
	f.punch(t, model.PunchOut, "12:00")
	f.punch(t, model.PunchIn, "13:00")
	f.punch(t, model.PunchOut, "17:00")

	sessions, total, err := f.tracker.ListSessions(ctx, SessionFilter{EmployeeID: &f.emp.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].PunchCycles, 2)
	assert.True(t, at("09:00").Equal(sessions[0].PunchCycles[0].PunchIn))
	require.NotNil(t, sessions[0].Employee)
	assert.Equal(t, "E001", sessions[0].Employee.Code)

	next := workDay.AddDate(0, 0, 1)
	sessions, total, err = f.tracker.ListSessions(ctx, SessionFilter{StartDate: &next})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, sessions)

	got, err := f.tracker.GetSession(ctx, SessionID(f.emp.ID, workDay))
	require.NoError(t, err)
	assertHours(t, "7.00", got.WorkingHours)

	_, err = f.tracker.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	kind := model.PunchOut
	events, total, err := f.tracker.ListEvents(ctx, EventFilter{EmployeeID: &f.emp.ID, Kind: &kind, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, events, 1)
	assert.True(t, at("17:00").Equal(events[0].Instant))

	f.clock.Set(at("18:00"))
	today, err := f.tracker.TodayEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, today, 4)
}

func TestEmployees(t *testing.T) {
	f := newFixture(t, NewTimeZone(time.UTC))
	ctx := context.Background()

	_, err := f.tracker.CreateEmployee(ctx, model.Employee{Code: "E001", Name: "Duplicate"})
	assert.EqualError(t, err, "Employee ID E001 already exists.")

	_, err = f.tracker.CreateEmployee(ctx, model.Employee{Code: " ", Name: "Blank"})
	assert.True(t, IsValidation(err))

	found, err := f.tracker.FindEmployeeByCode(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, f.emp.ID, found.ID)

	require.NoError(t, f.tracker.DeactivateEmployee(ctx, f.emp.ID))
	active, err := f.tracker.ListEmployees(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := f.tracker.ListEmployees(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, f.tracker.DeactivateEmployee(ctx, "missing"), ErrNotFound)
	_, err = f.tracker.GetEmployee(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
