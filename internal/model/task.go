package model

import "time"

// Task represents a single to-do item. A nil CategoryID renders as
// "Uncategorized". Completion is the only state change: Completed flips and
// CompletedAt is set or cleared alongside it.
type Task struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      uint  `gorm:"index"`
	CategoryID  *uint `gorm:"index"`
	Title       string
	DueDate     *time.Time
	Completed   bool `gorm:"default:false"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
