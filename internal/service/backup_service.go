package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gorm.io/gorm"
)

// sqliteHeader is the 16-byte magic at the start of every SQLite file.
var sqliteHeader = []byte("SQLite format 3\x00")

var (
	// ErrNotSQLiteFile means a restore source failed the header check.
	ErrNotSQLiteFile = errors.New("file is not a SQLite database")
	// ErrBackupMissing means the restore source does not exist.
	ErrBackupMissing = errors.New("backup file does not exist")
)

// restoreTables lists every application table, parents before children, so
// restore inserts in foreign-key order and deletes in reverse.
var restoreTables = []string{
	"users",
	"categories",
	"tasks",
	"study_logs",
	"quiz_results",
	"ai_contents",
	"chat_messages",
	"settings",
}

// BackupService snapshots and restores the database through the live
// connection pool. Neither direction touches the open database file from
// outside SQLite, so concurrent readers (the reminder scheduler) always see
// a consistent state. Restore still forces a fresh login, since every row
// under the active session may have changed.
type BackupService struct {
	db *gorm.DB
}

func NewBackupService(db *gorm.DB) *BackupService {
	return &BackupService{db: db}
}

// Backup writes a consistent snapshot of the database to destPath, creating
// parent directories as needed.
func (s *BackupService) Backup(ctx context.Context, destPath string) error {
	if destPath == "" {
		return fmt.Errorf("%w: destination path is required", ErrValidation)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	// VACUUM INTO refuses to overwrite an existing file.
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replace backup: %w", err)
	}
	if err := s.db.WithContext(ctx).Exec("VACUUM INTO ?", destPath).Error; err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Restore replaces all application data with the contents of the backup at
// srcPath after verifying it is a SQLite database. The copy runs in one
// exclusive transaction on a dedicated connection, so the pool stays valid
// and other connections see either the old state or the new one, never a
// half-restored file.
func (s *BackupService) Restore(ctx context.Context, srcPath string) error {
	if err := s.Validate(srcPath); err != nil {
		return err
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	defer conn.Close()

	// ATTACH is not allowed inside a transaction, so it brackets one.
	if _, err := conn.ExecContext(ctx, "ATTACH DATABASE ? AS restore_src", srcPath); err != nil {
		return fmt.Errorf("attach backup: %w", err)
	}
	defer conn.ExecContext(context.WithoutCancel(ctx), "DETACH DATABASE restore_src")

	if err := copyAttached(ctx, conn); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	return nil
}

func copyAttached(ctx context.Context, conn *sql.Conn) error {
	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return err
	}
	rollback := func() { _, _ = conn.ExecContext(ctx, "ROLLBACK") }

	// Rows are deleted children-first and inserted parents-first; deferring
	// the checks covers self-referencing data in between.
	if _, err := conn.ExecContext(ctx, "PRAGMA defer_foreign_keys = ON"); err != nil {
		rollback()
		return err
	}
	for i := len(restoreTables) - 1; i >= 0; i-- {
		if _, err := conn.ExecContext(ctx, "DELETE FROM main."+restoreTables[i]); err != nil {
			rollback()
			return err
		}
	}
	for _, table := range restoreTables {
		stmt := fmt.Sprintf("INSERT INTO main.%s SELECT * FROM restore_src.%s", table, table)
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			rollback()
			return err
		}
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		rollback()
		return err
	}
	return nil
}

// Validate checks that srcPath exists and carries the SQLite header.
func (s *BackupService) Validate(srcPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrBackupMissing
		}
		return fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, header); err != nil {
		return ErrNotSQLiteFile
	}
	if !bytes.Equal(header, sqliteHeader) {
		return ErrNotSQLiteFile
	}
	return nil
}
