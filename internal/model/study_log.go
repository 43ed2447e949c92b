package model

import "time"

// StudyLog records one study session. Logs are immutable after creation
// except for deletion; analytics are derived from them.
type StudyLog struct {
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"index"`
	Subject         string
	DurationMinutes int
	Notes           string
	LoggedAt        time.Time `gorm:"index"`
	CreatedAt       time.Time
}
