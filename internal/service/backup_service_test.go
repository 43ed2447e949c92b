package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-assistant/internal/repository"
)

func TestBackupAndRestore(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	logs := NewStudyLogService(repository.NewStudyLogRepository(db))
	svc := NewBackupService(db)
	ctx := context.Background()

	_, err := logs.Log(ctx, user.ID, "algebra", 30, "")
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "backups", "snap.db")
	require.NoError(t, svc.Backup(ctx, dest))
	require.NoError(t, svc.Validate(dest), "backup carries the SQLite header")

	t.Run("restore rolls data back to the snapshot", func(t *testing.T) {
		_, err := logs.Log(ctx, user.ID, "chemistry", 45, "")
		require.NoError(t, err)

		require.NoError(t, svc.Restore(ctx, dest))

		entries, err := logs.Recent(ctx, user.ID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "algebra", entries[0].Subject)
	})

	t.Run("connection keeps working after restore", func(t *testing.T) {
		_, err := logs.Log(ctx, user.ID, "physics", 20, "")
		require.NoError(t, err)

		entries, err := logs.Recent(ctx, user.ID, 10)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("backup overwrites an existing snapshot", func(t *testing.T) {
		require.NoError(t, svc.Backup(ctx, dest))
		require.NoError(t, svc.Validate(dest))
	})
}

func TestRestoreValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewBackupService(db)
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		err := svc.Restore(ctx, filepath.Join(dir, "nope.db"))
		assert.ErrorIs(t, err, ErrBackupMissing)
	})

	t.Run("not a sqlite file", func(t *testing.T) {
		bogus := filepath.Join(dir, "bogus.db")
		require.NoError(t, os.WriteFile(bogus, []byte("just text"), 0o644))
		err := svc.Restore(ctx, bogus)
		assert.ErrorIs(t, err, ErrNotSQLiteFile)
	})

	t.Run("too short for a header", func(t *testing.T) {
		tiny := filepath.Join(dir, "tiny.db")
		require.NoError(t, os.WriteFile(tiny, []byte("SQL"), 0o644))
		err := svc.Restore(ctx, tiny)
		assert.ErrorIs(t, err, ErrNotSQLiteFile)
	})
}
