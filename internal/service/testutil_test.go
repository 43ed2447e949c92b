package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"study-assistant/internal/model"
	"study-assistant/internal/repository"
)

// newTestDB opens an isolated in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Task{},
		&model.StudyLog{},
		&model.QuizResult{},
		&model.AIContent{},
		&model.ChatMessage{},
		&model.Setting{},
	))
	return db
}

// registerTestUser creates an account through the real registration flow so
// default categories exist.
func registerTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	auth := NewAuthService(repository.NewUserRepository(db), repository.NewCategoryRepository(db))
	user, err := auth.Register(context.Background(), username, "secret")
	require.NoError(t, err)
	return user
}
