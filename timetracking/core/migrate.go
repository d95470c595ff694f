package core

import (
	"fmt"

	"axiapac.com/timetracker/timetracking/model"
	"gorm.io/gorm"
)

func Models() []interface{} {
	return []interface{}{
		&model.Employee{},
		&model.BusinessHours{},
		&model.PunchEvent{},
		&model.WorkSession{},
		&model.PunchCycle{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
