package model

import "time"

// DefaultCategoryName is the fallback category every user owns. Tasks of a
// deleted category are reassigned to it, and it cannot be deleted itself.
const DefaultCategoryName = "General"

// Category groups tasks by area (academic, personal, project, etc.).
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;index:idx_user_category_name,unique"`
	Name      string `gorm:"index:idx_user_category_name,unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}
