package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"study-assistant/internal/model"
	"study-assistant/internal/repository"
)

// AIContentService saves AI responses the user wants to keep and serves the
// review hub.
type AIContentService struct {
	contents *repository.AIContentRepository
	chats    *repository.ChatRepository
}

func NewAIContentService(contents *repository.AIContentRepository, chats *repository.ChatRepository) *AIContentService {
	return &AIContentService{contents: contents, chats: chats}
}

// Save stores one AI response under a short title for later review.
func (s *AIContentService) Save(ctx context.Context, userID uint, kind model.AIContentKind, title, prompt, response string) (*model.AIContent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(response) == "" {
		return nil, fmt.Errorf("%w: response text is required", ErrValidation)
	}

	content := &model.AIContent{
		UserID:       userID,
		Kind:         kind,
		Title:        title,
		Prompt:       prompt,
		ResponseText: response,
	}
	if err := s.contents.Create(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// List returns saved content, optionally filtered by kind.
func (s *AIContentService) List(ctx context.Context, userID uint, kind model.AIContentKind, limit int) ([]model.AIContent, error) {
	return s.contents.ListByUser(ctx, userID, kind, limit)
}

func (s *AIContentService) Get(ctx context.Context, userID, id uint) (*model.AIContent, error) {
	content, err := s.contents.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find ai content: %w", err)
	}
	return content, nil
}

func (s *AIContentService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.contents.Delete(ctx, userID, id)
}

// AppendChatMessage records one chat turn in the persistent transcript.
func (s *AIContentService) AppendChatMessage(ctx context.Context, userID uint, role, content string) error {
	if role != model.ChatRoleUser && role != model.ChatRoleModel {
		return fmt.Errorf("%w: unknown chat role %q", ErrValidation, role)
	}
	return s.chats.Append(ctx, &model.ChatMessage{UserID: userID, Role: role, Content: content})
}

// ChatHistory returns up to limit recent chat messages, oldest first.
func (s *AIContentService) ChatHistory(ctx context.Context, userID uint, limit int) ([]model.ChatMessage, error) {
	return s.chats.Recent(ctx, userID, limit)
}

// ClearChat wipes the stored transcript.
func (s *AIContentService) ClearChat(ctx context.Context, userID uint) error {
	return s.chats.Clear(ctx, userID)
}
