package model

import "time"

const (
	DefaultBreakDuration = 60
	DefaultLateThreshold = 15
)

// BusinessHours is the company-wide working day. StartTime and EndTime are
// local wall-clock times such as "09:00" or "17:30:00".
type BusinessHours struct {
	ID            string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	StartTime     string `gorm:"column:start_time;type:varchar(8);not null" json:"startTime"`
	EndTime       string `gorm:"column:end_time;type:varchar(8);not null" json:"endTime"`
	BreakDuration int    `gorm:"column:break_duration;not null;default:60" json:"breakDuration"`
	LateThreshold int    `gorm:"column:late_threshold;not null;default:15" json:"lateThreshold"`
	IsActive      bool   `gorm:"column:is_active;not null;default:false;index" json:"isActive"`

	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (BusinessHours) TableName() string {
	return "business_hours"
}
