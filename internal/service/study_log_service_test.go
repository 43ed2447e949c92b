package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-assistant/internal/repository"
)

func TestStudyLog(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	svc := NewStudyLogService(repository.NewStudyLogRepository(db))
	ctx := context.Background()

	entry, err := svc.Log(ctx, user.ID, "calculus", 45, "limits and derivatives")
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.LoggedAt.IsZero())

	t.Run("rejects zero duration", func(t *testing.T) {
		_, err := svc.Log(ctx, user.ID, "calculus", 0, "")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects empty subject", func(t *testing.T) {
		_, err := svc.Log(ctx, user.ID, "  ", 30, "")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("recent returns newest first", func(t *testing.T) {
		_, err := svc.Log(ctx, user.ID, "physics", 30, "")
		require.NoError(t, err)

		logs, err := svc.Recent(ctx, user.ID, 10)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "physics", logs[0].Subject)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, user.ID, entry.ID))
		assert.ErrorIs(t, svc.Delete(ctx, user.ID, entry.ID), ErrNotFound)
	})
}

func TestStudyLogOwnerIsolation(t *testing.T) {
	db := newTestDB(t)
	alice := registerTestUser(t, db, "alice")
	bob := registerTestUser(t, db, "bob")
	svc := NewStudyLogService(repository.NewStudyLogRepository(db))
	ctx := context.Background()

	aliceEntry, err := svc.Log(ctx, alice.ID, "history", 60, "")
	require.NoError(t, err)
	_, err = svc.Log(ctx, bob.ID, "biology", 20, "")
	require.NoError(t, err)

	logs, err := svc.Recent(ctx, bob.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "biology", logs[0].Subject)

	t.Run("cannot delete another user's entry", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, bob.ID, aliceEntry.ID), ErrNotFound)
	})
}
