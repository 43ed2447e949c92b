package model

import "time"

// Setting keys understood by the application.
const (
	SettingKeyGeminiAPIKey     = "gemini_api_key"
	SettingKeyPomodoroWork     = "pomodoro_work_minutes"
	SettingKeyPomodoroBreak    = "pomodoro_break_minutes"
	SettingKeyPomodoroLongRest = "pomodoro_long_break_minutes"
)

// Setting is a per-user key-value pair, upserted on write.
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;index:idx_user_setting_key,unique"`
	Key       string `gorm:"size:100;index:idx_user_setting_key,unique;not null"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
