package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"study-assistant/internal/model"
)

// ChatRepository persists the AI chat transcript per user.
type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Append(ctx context.Context, msg *model.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}
	return nil
}

// Recent returns up to limit most recent messages in chronological order.
func (r *ChatRepository) Recent(ctx context.Context, userID uint, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	// Reverse so callers get oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *ChatRepository) Clear(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Delete(&model.ChatMessage{}).Error; err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}
