package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"axiapac.com/timetracker/timetracking/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func findActiveEmployee(db *gorm.DB, id string) (*model.Employee, error) {
	var emp model.Employee
	err := db.Where("id = ?", id).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}
	if !emp.IsActive {
		return nil, fmt.Errorf("employee %s is inactive: %w", id, ErrNotFound)
	}
	return &emp, nil
}

func (t *Tracker) CreateEmployee(ctx context.Context, emp model.Employee) (*model.Employee, error) {
	emp.Code = strings.TrimSpace(emp.Code)
	emp.Name = strings.TrimSpace(emp.Name)
	if emp.Code == "" {
		return nil, validationf("Employee ID is required.")
	}
	if emp.Name == "" {
		return nil, validationf("Name is required.")
	}
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	emp.IsActive = true

	err := t.db.WithContext(ctx).Create(&emp).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, validationf("Employee ID %s already exists.", emp.Code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return &emp, nil
}

func (t *Tracker) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	var emp model.Employee
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}
	return &emp, nil
}

// FindEmployeeByCode looks up an employee by their employee number.
func (t *Tracker) FindEmployeeByCode(ctx context.Context, code string) (*model.Employee, error) {
	var emp model.Employee
	err := t.db.WithContext(ctx).Where("code = ?", code).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("employee %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee: %w", err)
	}
	return &emp, nil
}

func (t *Tracker) ListEmployees(ctx context.Context, includeInactive bool) ([]model.Employee, error) {
	var employees []model.Employee
	q := t.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	return employees, nil
}

func (t *Tracker) DeactivateEmployee(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	return nil
}
