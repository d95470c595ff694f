package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusOnBreak    SessionStatus = "on_break"
	StatusComplete   SessionStatus = "complete"
)

func (s SessionStatus) Label() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusOnBreak:
		return "On Break"
	case StatusComplete:
		return "Complete"
	}
	return string(s)
}

type WorkSession struct {
	ID            string          `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	EmployeeID    string          `gorm:"column:employee_id;type:varchar(36);not null;uniqueIndex:idx_session_employee_date,priority:1" json:"employeeId"`
	Date          time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:idx_session_employee_date,priority:2;index" json:"date"`
	PunchIn       *time.Time      `gorm:"column:punch_in" json:"punchIn"`
	PunchOut      *time.Time      `gorm:"column:punch_out" json:"punchOut"`
	BreakStart    *time.Time      `gorm:"column:break_start" json:"breakStart"`
	BreakEnd      *time.Time      `gorm:"column:break_end" json:"breakEnd"`
	TotalHours    decimal.Decimal `gorm:"column:total_hours;type:decimal(7,2);not null;default:0" json:"totalHours"`
	BreakDuration decimal.Decimal `gorm:"column:break_duration;type:decimal(7,2);not null;default:0" json:"breakDuration"`
	WorkingHours  decimal.Decimal `gorm:"column:working_hours;type:decimal(7,2);not null;default:0" json:"workingHours"`
	IsLateIn      bool            `gorm:"column:is_late_in;not null;default:false" json:"isLateIn"`
	IsEarlyOut    bool            `gorm:"column:is_early_out;not null;default:false" json:"isEarlyOut"`
	Status        SessionStatus   `gorm:"column:status;type:varchar(20);not null;default:complete;index" json:"status"`
	Note          *string         `gorm:"column:note;type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`

	Employee    *Employee    `gorm:"foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	PunchCycles []PunchCycle `gorm:"foreignKey:WorkSessionID;references:ID;constraint:OnDelete:CASCADE" json:"punchCycles"`
}

func (WorkSession) TableName() string {
	return "work_sessions"
}

// SameState reports whether two sessions carry the same derived values,
// ignoring identity and bookkeeping timestamps.
func (s WorkSession) SameState(o WorkSession) bool {
	return s.EmployeeID == o.EmployeeID &&
		s.Date.Format(time.DateOnly) == o.Date.Format(time.DateOnly) &&
		sameInstant(s.PunchIn, o.PunchIn) &&
		sameInstant(s.PunchOut, o.PunchOut) &&
		sameInstant(s.BreakStart, o.BreakStart) &&
		sameInstant(s.BreakEnd, o.BreakEnd) &&
		s.TotalHours.Equal(o.TotalHours) &&
		s.BreakDuration.Equal(o.BreakDuration) &&
		s.WorkingHours.Equal(o.WorkingHours) &&
		s.IsLateIn == o.IsLateIn &&
		s.IsEarlyOut == o.IsEarlyOut &&
		s.Status == o.Status
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
