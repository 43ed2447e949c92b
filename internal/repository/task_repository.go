package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"study-assistant/internal/model"
)

// TaskFilter narrows task listings. Zero value means "all tasks".
type TaskFilter struct {
	IncludeCompleted bool
	CategoryID       *uint
	DueOn            *time.Time // tasks due on this calendar day
	DueBefore        *time.Time // open tasks overdue relative to this time
	DueAfter         *time.Time // tasks due on or after this calendar day
	DueWithin        *time.Time // tasks due no later than this time
	Limit            int
}

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if !filter.IncludeCompleted {
		query = query.Where("completed = ?", false)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.DueOn != nil {
		start := startOfDay(*filter.DueOn)
		query = query.Where("due_date >= ? AND due_date < ?", start, start.AddDate(0, 0, 1))
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date < ? AND completed = ?", startOfDay(*filter.DueBefore), false)
	}
	if filter.DueAfter != nil {
		query = query.Where("due_date >= ?", startOfDay(*filter.DueAfter))
	}
	if filter.DueWithin != nil {
		query = query.Where("due_date <= ?", *filter.DueWithin)
	}

	query = query.Order("due_date IS NULL, due_date ASC, created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// SetCompleted flips the completion state and keeps CompletedAt in sync.
func (r *TaskRepository) SetCompleted(ctx context.Context, task *model.Task, completed bool, at time.Time) error {
	task.Completed = completed
	if completed {
		task.CompletedAt = &at
	} else {
		task.CompletedAt = nil
	}
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).
		Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CountByCompletion returns total and completed task counts, optionally
// bounded to tasks created within [from, to).
func (r *TaskRepository) CountByCompletion(ctx context.Context, userID uint, from, to *time.Time) (total, completed int64, err error) {
	base := r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", userID)
	if from != nil {
		base = base.Where("created_at >= ?", *from)
	}
	if to != nil {
		base = base.Where("created_at < ?", *to)
	}

	if err = base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count tasks: %w", err)
	}
	if err = base.Session(&gorm.Session{}).Where("completed = ?", true).Count(&completed).Error; err != nil {
		return 0, 0, fmt.Errorf("count completed tasks: %w", err)
	}
	return total, completed, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
