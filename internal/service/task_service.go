package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"study-assistant/internal/model"
	"study-assistant/internal/repository"
)

// TaskInput carries user-supplied fields for a new task.
type TaskInput struct {
	Title        string `validate:"required,min=1,max=200"`
	CategoryName string `validate:"omitempty,max=100"`
	DueDate      *time.Time
}

// TaskService manages the to-do list.
type TaskService struct {
	tasks      *repository.TaskRepository
	categories *repository.CategoryRepository
	validate   *validator.Validate
}

func NewTaskService(tasks *repository.TaskRepository, categories *repository.CategoryRepository) *TaskService {
	return &TaskService{
		tasks:      tasks,
		categories: categories,
		validate:   validator.New(),
	}
}

// Create validates the input and stores the task. The category, when given,
// must already exist for this user.
func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	task := &model.Task{
		UserID:  userID,
		Title:   input.Title,
		DueDate: input.DueDate,
	}

	if input.CategoryName != "" {
		category, err := s.categories.FindByName(ctx, userID, input.CategoryName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("category %q: %w", input.CategoryName, ErrNotFound)
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
		task.CategoryID = &category.ID
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListOpen returns pending tasks, optionally limited to one category.
func (s *TaskService) ListOpen(ctx context.Context, userID uint, categoryID *uint) ([]model.Task, error) {
	return s.tasks.List(ctx, userID, repository.TaskFilter{CategoryID: categoryID})
}

// ListAll returns every task including completed ones.
func (s *TaskService) ListAll(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.tasks.List(ctx, userID, repository.TaskFilter{IncludeCompleted: true})
}

// DueToday returns open tasks due on the current calendar day.
func (s *TaskService) DueToday(ctx context.Context, userID uint, now time.Time) ([]model.Task, error) {
	return s.tasks.List(ctx, userID, repository.TaskFilter{DueOn: &now})
}

// Upcoming returns open tasks due from today through the next seven days.
func (s *TaskService) Upcoming(ctx context.Context, userID uint, now time.Time) ([]model.Task, error) {
	horizon := now.AddDate(0, 0, 7)
	return s.tasks.List(ctx, userID, repository.TaskFilter{DueAfter: &now, DueWithin: &horizon})
}

// Overdue returns open tasks whose due date has already passed.
func (s *TaskService) Overdue(ctx context.Context, userID uint, now time.Time) ([]model.Task, error) {
	return s.tasks.List(ctx, userID, repository.TaskFilter{DueBefore: &now})
}

// Complete marks a task done. Completing an already completed task is a
// no-op rather than an error.
func (s *TaskService) Complete(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	if task.Completed {
		return task, nil
	}
	if err := s.tasks.SetCompleted(ctx, task, true, time.Now()); err != nil {
		return nil, err
	}
	return task, nil
}

// Reopen clears the completion state of a task.
func (s *TaskService) Reopen(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	if !task.Completed {
		return task, nil
	}
	if err := s.tasks.SetCompleted(ctx, task, false, time.Time{}); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	if _, err := s.tasks.FindByID(ctx, userID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find task: %w", err)
	}
	return s.tasks.Delete(ctx, userID, taskID)
}
