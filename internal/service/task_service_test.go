package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-assistant/internal/repository"
)

func newTaskService(t *testing.T) (*TaskService, uint) {
	t.Helper()
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	return NewTaskService(repository.NewTaskRepository(db), repository.NewCategoryRepository(db)), user.ID
}

func TestTaskCreate(t *testing.T) {
	svc, userID := newTaskService(t)
	ctx := context.Background()

	t.Run("with existing category", func(t *testing.T) {
		task, err := svc.Create(ctx, userID, TaskInput{Title: "read chapter 3", CategoryName: "Academic"})
		require.NoError(t, err)
		assert.NotZero(t, task.ID)
		require.NotNil(t, task.CategoryID)
	})

	t.Run("unknown category fails", func(t *testing.T) {
		_, err := svc.Create(ctx, userID, TaskInput{Title: "a", CategoryName: "NoSuchCategory"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := svc.Create(ctx, userID, TaskInput{Title: ""})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTaskDueFilters(t *testing.T) {
	svc, userID := newTaskService(t)
	ctx := context.Background()
	now := time.Now()
	// Midday anchors keep the assertions away from midnight boundaries.
	midday := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())

	mk := func(title string, due time.Time) {
		t.Helper()
		_, err := svc.Create(ctx, userID, TaskInput{Title: title, DueDate: &due})
		require.NoError(t, err)
	}

	mk("yesterday", midday.AddDate(0, 0, -1))
	mk("today", midday)
	mk("in three days", midday.AddDate(0, 0, 3))
	mk("in two weeks", midday.AddDate(0, 0, 14))

	t.Run("due today", func(t *testing.T) {
		tasks, err := svc.DueToday(ctx, userID, now)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "today", tasks[0].Title)
	})

	t.Run("overdue", func(t *testing.T) {
		tasks, err := svc.Overdue(ctx, userID, now)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "yesterday", tasks[0].Title)
	})

	t.Run("upcoming week", func(t *testing.T) {
		tasks, err := svc.Upcoming(ctx, userID, now)
		require.NoError(t, err)
		titles := make([]string, len(tasks))
		for i, task := range tasks {
			titles[i] = task.Title
		}
		assert.Contains(t, titles, "today")
		assert.Contains(t, titles, "in three days")
		assert.NotContains(t, titles, "yesterday")
		assert.NotContains(t, titles, "in two weeks")
	})
}

func TestTaskCompleteAndReopen(t *testing.T) {
	svc, userID := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, userID, TaskInput{Title: "laundry"})
	require.NoError(t, err)

	done, err := svc.Complete(ctx, userID, task.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)

	t.Run("completing again is a no-op", func(t *testing.T) {
		again, err := svc.Complete(ctx, userID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, done.CompletedAt.Unix(), again.CompletedAt.Unix())
	})

	t.Run("reopen clears completion", func(t *testing.T) {
		reopened, err := svc.Reopen(ctx, userID, task.ID)
		require.NoError(t, err)
		assert.False(t, reopened.Completed)
		assert.Nil(t, reopened.CompletedAt)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := svc.Complete(ctx, userID, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTaskDelete(t *testing.T) {
	svc, userID := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, userID, TaskInput{Title: "temp"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, task.ID))
	assert.ErrorIs(t, svc.Delete(ctx, userID, task.ID), ErrNotFound)
}

func TestTaskListScopedToUser(t *testing.T) {
	db := newTestDB(t)
	alice := registerTestUser(t, db, "alice")
	bob := registerTestUser(t, db, "bob")
	svc := NewTaskService(repository.NewTaskRepository(db), repository.NewCategoryRepository(db))
	ctx := context.Background()

	_, err := svc.Create(ctx, alice.ID, TaskInput{Title: "alice task"})
	require.NoError(t, err)

	tasks, err := svc.ListOpen(ctx, bob.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
