package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"axiapac.com/timetracker/timetracking/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const day = 24 * time.Hour

// ParseTimeOfDay converts "08:00" or "08:00:30" into an offset from midnight.
func ParseTimeOfDay(timeStr string) (time.Duration, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		// Try with seconds
		t, err = time.Parse("15:04:05", timeStr)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", timeStr, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

func sinceMidnight(local time.Time) time.Duration {
	return time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())
}

// Policy answers lateness questions against one configuration. A nil
// configuration is never late and never early.
type Policy struct {
	Config *model.BusinessHours
}

func NewPolicy(cfg *model.BusinessHours) Policy {
	return Policy{Config: cfg}
}

// IsLate reports whether local time-of-day is strictly after start plus the
// late threshold. The threshold wraps within the day.
func (p Policy) IsLate(local time.Time) bool {
	if p.Config == nil {
		return false
	}
	start, err := ParseTimeOfDay(p.Config.StartTime)
	if err != nil {
		return false
	}
	limit := (start + time.Duration(p.Config.LateThreshold)*time.Minute) % day
	return sinceMidnight(local) > limit
}

// IsEarly reports whether local time-of-day is strictly before end.
func (p Policy) IsEarly(local time.Time) bool {
	if p.Config == nil {
		return false
	}
	end, err := ParseTimeOfDay(p.Config.EndTime)
	if err != nil {
		return false
	}
	return sinceMidnight(local) < end
}

func ValidateBusinessHours(cfg *model.BusinessHours) error {
	if _, err := ParseTimeOfDay(cfg.StartTime); err != nil {
		return validationf("Start time must be HH:MM or HH:MM:SS.")
	}
	if _, err := ParseTimeOfDay(cfg.EndTime); err != nil {
		return validationf("End time must be HH:MM or HH:MM:SS.")
	}
	if cfg.BreakDuration < 0 {
		return validationf("Break duration cannot be negative.")
	}
	if cfg.LateThreshold < 0 {
		return validationf("Late threshold cannot be negative.")
	}
	return nil
}

// ActiveBusinessHours returns the newest active configuration, or nil when
// none is active.
func ActiveBusinessHours(db *gorm.DB) (*model.BusinessHours, error) {
	var cfg model.BusinessHours
	err := db.Where("is_active = ?", true).Order("created_at DESC").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business hours: %w", err)
	}
	return &cfg, nil
}

// ActiveConfiguration returns the policy currently in force; nil when none.
func (t *Tracker) ActiveConfiguration(ctx context.Context) (*model.BusinessHours, error) {
	return ActiveBusinessHours(t.db.WithContext(ctx))
}

func (t *Tracker) ListBusinessHours(ctx context.Context) ([]model.BusinessHours, error) {
	var configs []model.BusinessHours
	if err := t.db.WithContext(ctx).Order("created_at DESC").Find(&configs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch business hours: %w", err)
	}
	return configs, nil
}

// CreateBusinessHours stores a configuration. When activate is set every
// other configuration is deactivated in the same transaction.
func (t *Tracker) CreateBusinessHours(ctx context.Context, cfg model.BusinessHours, activate bool) (*model.BusinessHours, error) {
	if err := ValidateBusinessHours(&cfg); err != nil {
		return nil, err
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	cfg.IsActive = false

	err := t.serialized(ctx, businessHoursLockKey, func(tx *gorm.DB) error {
		if err := tx.Create(&cfg).Error; err != nil {
			return fmt.Errorf("failed to create business hours: %w", err)
		}
		if !activate {
			return nil
		}
		return activateBusinessHours(tx, &cfg)
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("business hours created",
		"id", cfg.ID, "start", cfg.StartTime, "end", cfg.EndTime, "active", cfg.IsActive)
	return &cfg, nil
}

func (t *Tracker) ActivateBusinessHours(ctx context.Context, id string) (*model.BusinessHours, error) {
	var cfg model.BusinessHours
	err := t.serialized(ctx, businessHoursLockKey, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&cfg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("business hours %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to fetch business hours: %w", err)
		}
		return activateBusinessHours(tx, &cfg)
	})
	if err != nil {
		return nil, err
	}

	t.logger.Info("business hours activated", "id", cfg.ID)
	return &cfg, nil
}

func activateBusinessHours(tx *gorm.DB, cfg *model.BusinessHours) error {
	if err := tx.Model(&model.BusinessHours{}).
		Where("id <> ? AND is_active = ?", cfg.ID, true).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate business hours: %w", err)
	}
	if err := tx.Model(cfg).Update("is_active", true).Error; err != nil {
		return fmt.Errorf("failed to activate business hours: %w", err)
	}
	cfg.IsActive = true
	return nil
}
