package model

import (
	"fmt"
	"time"
)

type PunchKind string

const (
	PunchIn    PunchKind = "punch_in"
	PunchOut   PunchKind = "punch_out"
	BreakStart PunchKind = "break_start"
	BreakEnd   PunchKind = "break_end"
)

var punchKinds = map[PunchKind]string{
	PunchIn:    "Punch In",
	PunchOut:   "Punch Out",
	BreakStart: "Break Start",
	BreakEnd:   "Break End",
}

func ParsePunchKind(s string) (PunchKind, error) {
	k := PunchKind(s)
	if _, ok := punchKinds[k]; !ok {
		return "", fmt.Errorf("unknown punch kind %q", s)
	}
	return k, nil
}

func (k PunchKind) Label() string {
	return punchKinds[k]
}

// PunchEvent is a single attendance action. Instant is always stored in UTC.
type PunchEvent struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(36);not null;index:idx_punch_employee_instant,priority:1" json:"employeeId"`
	Kind       PunchKind `gorm:"column:kind;type:varchar(20);not null" json:"type"`
	Instant    time.Time `gorm:"column:instant;not null;index:idx_punch_employee_instant,priority:2;index" json:"timestamp"`
	IsLate     bool      `gorm:"column:is_late;not null;default:false" json:"isLate"`
	IsEarly    bool      `gorm:"column:is_early;not null;default:false" json:"isEarly"`
	Note       *string   `gorm:"column:note;type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
}

func (PunchEvent) TableName() string {
	return "punch_events"
}
