package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	dbcore "axiapac.com/timetracker/core"
	"axiapac.com/timetracker/timetracking/model"
	"axiapac.com/timetracker/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultLockTimeout = 5 * time.Second
	maxRegenerateDays  = 366
)

type Options struct {
	TimeZone    *TimeZone
	Clock       utils.Clock
	Logger      *slog.Logger
	LockTimeout time.Duration
}

// Tracker records punches and keeps each employee-day's work session in step
// with its event log.
type Tracker struct {
	db          *gorm.DB
	tz          *TimeZone
	clock       utils.Clock
	logger      *slog.Logger
	locks       *DayLocks
	lockTimeout time.Duration
	tracer      trace.Tracer
}

func NewTracker(db *gorm.DB, opts Options) *Tracker {
	if opts.TimeZone == nil {
		opts.TimeZone = NewTimeZone(time.UTC)
	}
	if opts.Clock == nil {
		opts.Clock = utils.RealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = DefaultLockTimeout
	}
	return &Tracker{
		db:          db,
		tz:          opts.TimeZone,
		clock:       opts.Clock,
		logger:      opts.Logger,
		locks:       NewDayLocks(),
		lockTimeout: opts.LockTimeout,
		tracer:      otel.Tracer("axiapac.com/timetracker/timetracking/core"),
	}
}

func (t *Tracker) TimeZone() *TimeZone {
	return t.tz
}

func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// serialized runs fn in a transaction while holding the key's lock. A
// conflict is retried once.
func (t *Tracker) serialized(ctx context.Context, key string, fn func(tx *gorm.DB) error) error {
	err := t.attempt(ctx, key, fn)
	if errors.Is(err, ErrConflict) {
		t.logger.Warn("retrying after conflict", "key", key, "error", err)
		err = t.attempt(ctx, key, fn)
	}
	return err
}

func (t *Tracker) attempt(ctx context.Context, key string, fn func(tx *gorm.DB) error) error {
	lockCtx, cancel := context.WithTimeout(ctx, t.lockTimeout)
	defer cancel()

	release, err := t.locks.Acquire(lockCtx, key)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: lock %s not acquired within %s", ErrConflict, key, t.lockTimeout)
	}
	defer release()

	db := t.db.WithContext(ctx)
	err = db.Transaction(fn, dbcore.TxOptions(db))
	if errors.Is(err, gorm.ErrDuplicatedKey) || dbcore.IsLockConflict(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

// forUpdate adds a row lock where the dialect has one.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

type PunchRequest struct {
	EmployeeID string
	Kind       model.PunchKind
	Instant    *time.Time
	Note       *string
}

// RecordPunch appends an event and reconciles the local day it falls on, in
// one transaction.
func (t *Tracker) RecordPunch(ctx context.Context, req PunchRequest) (*model.PunchEvent, error) {
	kind, err := model.ParsePunchKind(string(req.Kind))
	if err != nil {
		return nil, validationf("Type must be one of punch_in, punch_out, break_start, break_end.")
	}

	instant := t.clock.Now()
	if req.Instant != nil {
		instant = *req.Instant
	}
	instant = instant.UTC()

	if _, err := findActiveEmployee(t.db.WithContext(ctx), req.EmployeeID); err != nil {
		return nil, err
	}

	date := t.tz.LocalDate(instant)
	var event model.PunchEvent
	err = t.serialized(ctx, DayKey(req.EmployeeID, date), func(tx *gorm.DB) error {
		cfg, err := ActiveBusinessHours(tx)
		if err != nil {
			return err
		}
		policy := NewPolicy(cfg)
		local := t.tz.ToLocal(instant)

		event = model.PunchEvent{
			ID:         uuid.NewString(),
			EmployeeID: req.EmployeeID,
			Kind:       kind,
			Instant:    instant,
			Note:       req.Note,
		}
		switch kind {
		case model.PunchIn:
			event.IsLate = policy.IsLate(local)
		case model.PunchOut:
			event.IsEarly = policy.IsEarly(local)
		}

		if err := tx.Omit(clause.Associations).Create(&event).Error; err != nil {
			return fmt.Errorf("failed to record punch: %w", err)
		}

		_, err = t.reconcile(ctx, tx, req.EmployeeID, date)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("punch recorded",
		"employee", req.EmployeeID, "kind", kind, "instant", instant, "date", date.Format(utils.DateLayout),
		"late", event.IsLate, "early", event.IsEarly)
	return &event, nil
}

// ReconcileDay rebuilds one employee-day from its events. It returns nil when
// the day has no events.
func (t *Tracker) ReconcileDay(ctx context.Context, employeeID string, date time.Time) (*model.WorkSession, error) {
	date = utils.DateOf(date)
	var session *model.WorkSession
	err := t.serialized(ctx, DayKey(employeeID, date), func(tx *gorm.DB) error {
		var err error
		session, err = t.reconcile(ctx, tx, employeeID, date)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (t *Tracker) reconcile(ctx context.Context, tx *gorm.DB, employeeID string, date time.Time) (*model.WorkSession, error) {
	_, span := t.tracer.Start(ctx, "timetracking.reconcile", trace.WithAttributes(
		attribute.String("employee.id", employeeID),
		attribute.String("date", date.Format(utils.DateLayout)),
	))
	defer span.End()

	sessionID := SessionID(employeeID, date)

	var existing model.WorkSession
	found := true
	err := forUpdate(tx).Where("id = ?", sessionID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		found = false
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch work session: %w", err)
	}

	start, end := t.tz.DayBounds(date)
	events, err := dayEvents(tx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	now := t.clock.Now()
	result := Reconcile(ReconcileInput{
		EmployeeID: employeeID,
		Date:       date,
		Events:     events,
		Now:        now,
		Today:      t.tz.LocalDate(now),
	})
	session := result.Session
	span.SetAttributes(attribute.Int("events", len(events)), attribute.Int("cycles", len(result.Cycles)))

	if found {
		var cycles []model.PunchCycle
		if err := tx.Where("work_session_id = ?", sessionID).Order("punch_in ASC").Find(&cycles).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch punch cycles: %w", err)
		}
		if existing.SameState(session) && sameCycles(cycles, result.Cycles) {
			existing.PunchCycles = cycles
			return &existing, nil
		}
		session.Note = existing.Note
		session.CreatedAt = existing.CreatedAt
		if err := tx.Omit(clause.Associations).Save(&session).Error; err != nil {
			return nil, fmt.Errorf("failed to update work session: %w", err)
		}
	} else {
		if err := tx.Omit(clause.Associations).Create(&session).Error; err != nil {
			return nil, fmt.Errorf("failed to create work session: %w", err)
		}
	}

	if err := tx.Where("work_session_id = ?", sessionID).Delete(&model.PunchCycle{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear punch cycles: %w", err)
	}
	if len(result.Cycles) > 0 {
		if err := tx.CreateInBatches(result.Cycles, 100).Error; err != nil {
			return nil, fmt.Errorf("failed to create punch cycles: %w", err)
		}
	}

	session.PunchCycles = result.Cycles
	t.logger.Debug("work session reconciled",
		"session", session.ID, "employee", employeeID, "date", date.Format(utils.DateLayout),
		"status", session.Status, "working", session.WorkingHours.String())
	return &session, nil
}

// CurrentStatus reports what the employee may do next, from today's events.
func (t *Tracker) CurrentStatus(ctx context.Context, employeeID string) (*WorkStatus, error) {
	db := t.db.WithContext(ctx)
	if _, err := findActiveEmployee(db, employeeID); err != nil {
		return nil, err
	}

	start, end := t.tz.DayBounds(t.tz.LocalDate(t.clock.Now()))
	events, err := dayEvents(db, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	status := ResolveStatus(employeeID, events)
	return &status, nil
}

// EditSession applies a manual correction to a session.
func (t *Tracker) EditSession(ctx context.Context, sessionID string, edit SessionEdit) (*model.WorkSession, error) {
	if err := edit.Validate(); err != nil {
		return nil, err
	}

	current, err := t.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var session model.WorkSession
	err = t.serialized(ctx, DayKey(current.EmployeeID, current.Date), func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ?", sessionID).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("work session %s: %w", sessionID, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch work session: %w", err)
		}

		cfg, err := ActiveBusinessHours(tx)
		if err != nil {
			return err
		}
		ApplyEdit(&session, edit, NewPolicy(cfg), t.tz)

		if err := tx.Omit(clause.Associations).Save(&session).Error; err != nil {
			return fmt.Errorf("failed to save work session: %w", err)
		}
		return tx.Where("work_session_id = ?", sessionID).Order("punch_in ASC").Find(&session.PunchCycles).Error
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("work session edited", "session", sessionID, "employee", session.EmployeeID)
	return &session, nil
}

type RegenerateOptions struct {
	EmployeeID *string
	StartDate  time.Time
	EndDate    time.Time
}

// RegenerateSessions reconciles every employee with events on each local date
// in the inclusive range.
func (t *Tracker) RegenerateSessions(ctx context.Context, opts RegenerateOptions) ([]model.WorkSession, error) {
	startDate, endDate := utils.DateOf(opts.StartDate), utils.DateOf(opts.EndDate)
	if startDate.After(endDate) {
		return nil, validationf("Start date cannot be after end date.")
	}
	if days := int(endDate.Sub(startDate).Hours()/24) + 1; days > maxRegenerateDays {
		return nil, validationf("Date range cannot exceed %d days.", maxRegenerateDays)
	}

	var sessions []model.WorkSession
	// iterate through each day in the range
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		start, end := t.tz.DayBounds(d)
		employeeIDs, err := employeesWithEvents(t.db.WithContext(ctx), start, end, opts.EmployeeID)
		if err != nil {
			return nil, err
		}

		for _, employeeID := range employeeIDs {
			session, err := t.ReconcileDay(ctx, employeeID, d)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile %s on %s: %w", employeeID, d.Format(utils.DateLayout), err)
			}
			if session != nil {
				sessions = append(sessions, *session)
			}
		}
	}

	t.logger.Info("work sessions regenerated",
		"start", startDate.Format(utils.DateLayout), "end", endDate.Format(utils.DateLayout), "sessions", len(sessions))
	return sessions, nil
}
