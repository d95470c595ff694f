package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PunchCycle struct {
	ID            string          `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	WorkSessionID string          `gorm:"column:work_session_id;type:varchar(36);not null;index:idx_cycle_session_punch_in,priority:1" json:"workSessionId"`
	PunchIn       time.Time       `gorm:"column:punch_in;not null;index:idx_cycle_session_punch_in,priority:2" json:"punchIn"`
	PunchOut      *time.Time      `gorm:"column:punch_out" json:"punchOut"`
	IsLateIn      bool            `gorm:"column:is_late_in;not null;default:false" json:"isLateIn"`
	IsEarlyOut    bool            `gorm:"column:is_early_out;not null;default:false" json:"isEarlyOut"`
	DurationHours decimal.Decimal `gorm:"column:duration_hours;type:decimal(7,2);not null;default:0" json:"durationHours"`

	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
}

func (PunchCycle) TableName() string {
	return "punch_cycles"
}

func (c PunchCycle) SameState(o PunchCycle) bool {
	return c.ID == o.ID &&
		c.PunchIn.Equal(o.PunchIn) &&
		sameInstant(c.PunchOut, o.PunchOut) &&
		c.IsLateIn == o.IsLateIn &&
		c.IsEarlyOut == o.IsEarlyOut &&
		c.DurationHours.Equal(o.DurationHours)
}
