package core

import (
	"context"
	"fmt"
	"time"

	"axiapac.com/timetracker/timetracking/model"
	"gorm.io/gorm"
)

// dayEvents loads one employee's events in [start, end), oldest first.
func dayEvents(db *gorm.DB, employeeID string, start, end time.Time) ([]model.PunchEvent, error) {
	var events []model.PunchEvent
	err := db.Where("employee_id = ? AND instant >= ? AND instant < ?", employeeID, start, end).
		Order("instant ASC, created_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch punch events: %w", err)
	}
	return events, nil
}

func employeesWithEvents(db *gorm.DB, start, end time.Time, employeeID *string) ([]string, error) {
	var ids []string
	q := db.Model(&model.PunchEvent{}).
		Distinct().
		Where("instant >= ? AND instant < ?", start, end)
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	if err := q.Order("employee_id").Pluck("employee_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch employees with events: %w", err)
	}
	return ids, nil
}

type EventFilter struct {
	EmployeeID *string
	StartDate  *time.Time // local business dates, inclusive
	EndDate    *time.Time
	Kind       *model.PunchKind
	Limit      int
	Offset     int
}

// ListEvents returns matching events newest first with the total count.
func (t *Tracker) ListEvents(ctx context.Context, f EventFilter) ([]model.PunchEvent, int64, error) {
	q := t.db.WithContext(ctx).Model(&model.PunchEvent{})
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.StartDate != nil {
		start, _ := t.tz.DayBounds(*f.StartDate)
		q = q.Where("instant >= ?", start)
	}
	if f.EndDate != nil {
		_, end := t.tz.DayBounds(*f.EndDate)
		q = q.Where("instant < ?", end)
	}
	if f.Kind != nil {
		q = q.Where("kind = ?", *f.Kind)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count punch events: %w", err)
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var events []model.PunchEvent
	if err := q.Preload("Employee").Order("instant DESC, created_at DESC").Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch punch events: %w", err)
	}
	return events, total, nil
}

// TodayEvents returns every employee's events for the current local day.
func (t *Tracker) TodayEvents(ctx context.Context) ([]model.PunchEvent, error) {
	today := t.tz.LocalDate(t.clock.Now())
	events, _, err := t.ListEvents(ctx, EventFilter{StartDate: &today, EndDate: &today})
	return events, err
}
