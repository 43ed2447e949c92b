package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"study-assistant/internal/model"
)

// SettingRepository stores per-user key/value settings.
type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the stored value, or ok=false when the key is unset.
func (r *SettingRepository) Get(ctx context.Context, userID uint, key string) (string, bool, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).Where("user_id = ? AND key = ?", userID, key).First(&setting).Error
	switch {
	case err == nil:
		return setting.Value, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", false, nil
	default:
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
}

// Set inserts or updates the key in one statement.
func (r *SettingRepository) Set(ctx context.Context, userID uint, key, value string) error {
	setting := model.Setting{UserID: userID, Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (r *SettingRepository) ListByUser(ctx context.Context, userID uint) ([]model.Setting, error) {
	var settings []model.Setting
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
