package service

import (
	"context"
	"fmt"
	"time"

	"study-assistant/internal/model"
)

// Reminder is a digest of tasks needing attention, shown on the main menu
// and pushed periodically by the scheduler.
type Reminder struct {
	DueToday []model.Task
	Overdue  []model.Task
}

// Empty reports whether there is nothing to remind about.
func (r Reminder) Empty() bool {
	return len(r.DueToday) == 0 && len(r.Overdue) == 0
}

// Summary renders a short human-readable digest.
func (r Reminder) Summary() string {
	if r.Empty() {
		return ""
	}
	switch {
	case len(r.Overdue) > 0 && len(r.DueToday) > 0:
		return fmt.Sprintf("%d task(s) overdue, %d due today", len(r.Overdue), len(r.DueToday))
	case len(r.Overdue) > 0:
		return fmt.Sprintf("%d task(s) overdue", len(r.Overdue))
	default:
		return fmt.Sprintf("%d task(s) due today", len(r.DueToday))
	}
}

// ReminderService builds task reminders for a user.
type ReminderService struct {
	tasks *TaskService
}

func NewReminderService(tasks *TaskService) *ReminderService {
	return &ReminderService{tasks: tasks}
}

// Check gathers overdue and due-today tasks as of now.
func (s *ReminderService) Check(ctx context.Context, userID uint) (Reminder, error) {
	now := time.Now()

	overdue, err := s.tasks.Overdue(ctx, userID, now)
	if err != nil {
		return Reminder{}, fmt.Errorf("list overdue tasks: %w", err)
	}
	dueToday, err := s.tasks.DueToday(ctx, userID, now)
	if err != nil {
		return Reminder{}, fmt.Errorf("list tasks due today: %w", err)
	}

	return Reminder{DueToday: dueToday, Overdue: overdue}, nil
}
