package model

import "time"

type Employee struct {
	ID         string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Code       string `gorm:"column:code;type:varchar(20);uniqueIndex;not null" json:"employeeId"`
	Name       string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email      string `gorm:"column:email;type:varchar(254)" json:"email"`
	Department string `gorm:"column:department;type:varchar(100)" json:"department"`
	Position   string `gorm:"column:position;type:varchar(100)" json:"position"`
	IsActive   bool   `gorm:"column:is_active;not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"column:created_at;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Employee) TableName() string {
	return "employees"
}
