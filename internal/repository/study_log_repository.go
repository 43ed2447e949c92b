package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"study-assistant/internal/model"
)

// StudyLogRepository handles persistence of study sessions.
type StudyLogRepository struct {
	db *gorm.DB
}

func NewStudyLogRepository(db *gorm.DB) *StudyLogRepository {
	return &StudyLogRepository{db: db}
}

func (r *StudyLogRepository) Create(ctx context.Context, entry *model.StudyLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create study log: %w", err)
	}
	return nil
}

func (r *StudyLogRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.StudyLog, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("logged_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var logs []model.StudyLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *StudyLogRepository) Count(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.StudyLog{}).
		Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count study logs: %w", err)
	}
	return n, nil
}

func (r *StudyLogRepository) TotalMinutes(ctx context.Context, userID uint) (int64, error) {
	var total *int64
	if err := r.db.WithContext(ctx).Model(&model.StudyLog{}).
		Where("user_id = ?", userID).
		Select("SUM(duration_minutes)").Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("sum study minutes: %w", err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// LoggedAtSince returns the raw timestamps of entries logged on or after
// since, most recent first. Calendar-day grouping happens in Go because
// SQLite's date() normalizes to UTC and would shift evening entries onto
// the wrong day for users away from UTC.
func (r *StudyLogRepository) LoggedAtSince(ctx context.Context, userID uint, since time.Time) ([]time.Time, error) {
	var stamps []time.Time
	if err := r.db.WithContext(ctx).Model(&model.StudyLog{}).
		Where("user_id = ? AND logged_at >= ?", userID, since).
		Order("logged_at DESC").
		Pluck("logged_at", &stamps).Error; err != nil {
		return nil, fmt.Errorf("list study timestamps: %w", err)
	}
	return stamps, nil
}

// SubjectMinutes is an aggregate row of study time per subject.
type SubjectMinutes struct {
	Subject string
	Minutes int64
}

// MinutesBySubject returns per-subject study totals, most studied first.
func (r *StudyLogRepository) MinutesBySubject(ctx context.Context, userID uint) ([]SubjectMinutes, error) {
	var rows []SubjectMinutes
	if err := r.db.WithContext(ctx).Model(&model.StudyLog{}).
		Where("user_id = ?", userID).
		Select("subject, SUM(duration_minutes) AS minutes").
		Group("subject").
		Order("minutes DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("sum minutes by subject: %w", err)
	}
	return rows, nil
}

func (r *StudyLogRepository) FindByID(ctx context.Context, userID, id uint) (*model.StudyLog, error) {
	var entry model.StudyLog
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *StudyLogRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.StudyLog{}).Error; err != nil {
		return fmt.Errorf("delete study log: %w", err)
	}
	return nil
}
