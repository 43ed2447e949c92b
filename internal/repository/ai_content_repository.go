package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"study-assistant/internal/model"
)

// AIContentRepository stores saved AI responses for later review.
type AIContentRepository struct {
	db *gorm.DB
}

func NewAIContentRepository(db *gorm.DB) *AIContentRepository {
	return &AIContentRepository{db: db}
}

func (r *AIContentRepository) Create(ctx context.Context, content *model.AIContent) error {
	if err := r.db.WithContext(ctx).Create(content).Error; err != nil {
		return fmt.Errorf("create ai content: %w", err)
	}
	return nil
}

func (r *AIContentRepository) ListByUser(ctx context.Context, userID uint, kind model.AIContentKind, limit int) ([]model.AIContent, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var items []model.AIContent
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AIContentRepository) FindByID(ctx context.Context, userID, id uint) (*model.AIContent, error) {
	var content model.AIContent
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *AIContentRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.AIContent{}).Error; err != nil {
		return fmt.Errorf("delete ai content: %w", err)
	}
	return nil
}
