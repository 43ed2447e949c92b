package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-assistant/internal/repository"
)

func TestSettingsPomodoroDefaults(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	svc := NewSettingsService(repository.NewSettingRepository(db))
	ctx := context.Background()

	work, shortBreak, longRest, err := svc.PomodoroDurations(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultPomodoroWorkMinutes, work)
	assert.Equal(t, DefaultPomodoroBreakMinutes, shortBreak)
	assert.Equal(t, DefaultPomodoroLongRestMinutes, longRest)
}

func TestSettingsPomodoroOverride(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	svc := NewSettingsService(repository.NewSettingRepository(db))
	ctx := context.Background()

	require.NoError(t, svc.SetPomodoroDurations(ctx, user.ID, 50, 10, 30))

	work, shortBreak, longRest, err := svc.PomodoroDurations(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, work)
	assert.Equal(t, 10, shortBreak)
	assert.Equal(t, 30, longRest)

	t.Run("overwrite is idempotent", func(t *testing.T) {
		require.NoError(t, svc.SetPomodoroDurations(ctx, user.ID, 40, 10, 30))
		work, _, _, err := svc.PomodoroDurations(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 40, work)
	})

	t.Run("rejects non-positive durations", func(t *testing.T) {
		err := svc.SetPomodoroDurations(ctx, user.ID, 0, 5, 15)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestSettingsGeminiKey(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	svc := NewSettingsService(repository.NewSettingRepository(db))
	ctx := context.Background()

	key, err := svc.GeminiAPIKey(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, key, "key is unset until configured")

	require.NoError(t, svc.SetGeminiAPIKey(ctx, user.ID, "abc123"))
	key, err = svc.GeminiAPIKey(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc123", key)
}
