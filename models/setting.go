package models

import "time"

// Setting holds the per-tenant throttling policy plus tenancy limits.
// One row per admin.
type Setting struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	AdminID uint `json:"admin_id" gorm:"uniqueIndex;not null"`

	StandardMaxDailyAttempts int     `json:"standard_max_daily_attempts" gorm:"default:3"`
	StandardMaxTotalAttempts int     `json:"standard_max_total_attempts" gorm:"default:9"`
	StandardAttemptsDelay    float64 `json:"standard_attempts_delay" gorm:"type:decimal(5,2);default:2.5"`

	DatedMaxDailyAttempts int     `json:"dated_max_daily_attempts" gorm:"default:2"`
	DatedMaxTotalAttempts int     `json:"dated_max_total_attempts" gorm:"default:5"`
	DatedAttemptsDelay    float64 `json:"dated_attempts_delay" gorm:"type:decimal(5,2);default:3.5"`

	// Old orders keep a delay between attempts but no daily or total cap.
	OldAttemptsDelay float64 `json:"old_attempts_delay" gorm:"type:decimal(5,2);default:2.5"`

	PublicRegistration bool `json:"public_registration" gorm:"default:false"`
	TrialDays          int  `json:"trial_days" gorm:"default:15"`
	MaxManagers        int  `json:"max_managers" gorm:"default:5"`
	MaxEmployees       int  `json:"max_employees" gorm:"default:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSetting is the policy applied to any tenant without an explicit
// settings row. Values mirror the column defaults.
func DefaultSetting(adminID uint) *Setting {
	return &Setting{
		AdminID:                  adminID,
		StandardMaxDailyAttempts: 3,
		StandardMaxTotalAttempts: 9,
		StandardAttemptsDelay:    2.5,
		DatedMaxDailyAttempts:    2,
		DatedMaxTotalAttempts:    5,
		DatedAttemptsDelay:       3.5,
		OldAttemptsDelay:         2.5,
		TrialDays:                15,
		MaxManagers:              5,
		MaxEmployees:             20,
	}
}
