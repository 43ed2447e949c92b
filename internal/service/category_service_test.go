package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-assistant/internal/model"
	"study-assistant/internal/repository"
)

func TestCategoryCreate(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	ctx := context.Background()

	category, err := svc.Create(ctx, user.ID, "Math")
	require.NoError(t, err)
	assert.Equal(t, "Math", category.Name)

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, "Math")
		assert.ErrorIs(t, err, ErrDuplicateCategory)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, "   ")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCategoryDeleteReassignsTasks(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categorySvc := NewCategoryService(categoryRepo)
	taskSvc := NewTaskService(taskRepo, categoryRepo)
	ctx := context.Background()

	mathCategory, err := categorySvc.Create(ctx, user.ID, "Math")
	require.NoError(t, err)

	task, err := taskSvc.Create(ctx, user.ID, TaskInput{Title: "integrals", CategoryName: "Math"})
	require.NoError(t, err)
	require.NotNil(t, task.CategoryID)

	require.NoError(t, categorySvc.Delete(ctx, user.ID, mathCategory.ID))

	t.Run("task moved to General", func(t *testing.T) {
		moved, err := taskRepo.FindByID(ctx, user.ID, task.ID)
		require.NoError(t, err)
		require.NotNil(t, moved.CategoryID)

		general, err := categoryRepo.FindByName(ctx, user.ID, model.DefaultCategoryName)
		require.NoError(t, err)
		assert.Equal(t, general.ID, *moved.CategoryID)
	})

	t.Run("category is gone", func(t *testing.T) {
		_, err := categoryRepo.FindByID(ctx, user.ID, mathCategory.ID)
		assert.Error(t, err)
	})
}

func TestCategoryDeleteProtectsDefault(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	categoryRepo := repository.NewCategoryRepository(db)
	svc := NewCategoryService(categoryRepo)
	ctx := context.Background()

	general, err := categoryRepo.FindByName(ctx, user.ID, model.DefaultCategoryName)
	require.NoError(t, err)

	err = svc.Delete(ctx, user.ID, general.ID)
	assert.ErrorIs(t, err, ErrProtectedCategory)
}
