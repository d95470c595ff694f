package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"axiapac.com/timetracker/timetracking/model"
	"gorm.io/gorm"
)

type SessionFilter struct {
	EmployeeID *string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *model.SessionStatus
	Limit      int
	Offset     int
}

func (f SessionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	return q
}

// ListSessions returns sessions newest date first, each with its cycles in
// punch-in order.
func (t *Tracker) ListSessions(ctx context.Context, f SessionFilter) ([]model.WorkSession, int64, error) {
	q := f.apply(t.db.WithContext(ctx).Model(&model.WorkSession{}))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count work sessions: %w", err)
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var sessions []model.WorkSession
	err := q.Preload("Employee").
		Preload("PunchCycles", func(db *gorm.DB) *gorm.DB { return db.Order("punch_in ASC") }).
		Order("date DESC, punch_in ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch work sessions: %w", err)
	}
	return sessions, total, nil
}

func (t *Tracker) GetSession(ctx context.Context, id string) (*model.WorkSession, error) {
	var session model.WorkSession
	err := t.db.WithContext(ctx).
		Preload("Employee").
		Preload("PunchCycles", func(db *gorm.DB) *gorm.DB { return db.Order("punch_in ASC") }).
		Where("id = ?", id).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("work session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work session: %w", err)
	}
	return &session, nil
}
