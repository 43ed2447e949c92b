package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-assistant/internal/repository"
)

func TestReminderCheck(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	tasks := NewTaskService(repository.NewTaskRepository(db), repository.NewCategoryRepository(db))
	svc := NewReminderService(tasks)
	ctx := context.Background()

	now := time.Now()
	midday := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())

	overdue := midday.AddDate(0, 0, -2)
	_, err := tasks.Create(ctx, user.ID, TaskInput{Title: "late", DueDate: &overdue})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, user.ID, TaskInput{Title: "today", DueDate: &midday})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, user.ID, TaskInput{Title: "no due date"})
	require.NoError(t, err)

	reminder, err := svc.Check(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, reminder.Empty())
	assert.Len(t, reminder.Overdue, 1)
	assert.Len(t, reminder.DueToday, 1)
	assert.Equal(t, "1 task(s) overdue, 1 due today", reminder.Summary())
}

func TestReminderEmpty(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	tasks := NewTaskService(repository.NewTaskRepository(db), repository.NewCategoryRepository(db))
	svc := NewReminderService(tasks)

	reminder, err := svc.Check(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, reminder.Empty())
	assert.Empty(t, reminder.Summary())
}

func TestCompletedTasksAreNotReminded(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	tasks := NewTaskService(repository.NewTaskRepository(db), repository.NewCategoryRepository(db))
	svc := NewReminderService(tasks)
	ctx := context.Background()

	due := time.Now().AddDate(0, 0, -1)
	task, err := tasks.Create(ctx, user.ID, TaskInput{Title: "done late", DueDate: &due})
	require.NoError(t, err)
	_, err = tasks.Complete(ctx, user.ID, task.ID)
	require.NoError(t, err)

	reminder, err := svc.Check(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, reminder.Empty())
}
