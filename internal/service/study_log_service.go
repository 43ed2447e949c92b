package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"study-assistant/internal/model"
	"study-assistant/internal/repository"
)

// StudyLogService records completed study sessions, both manually entered
// and finished Pomodoro work intervals.
type StudyLogService struct {
	logs *repository.StudyLogRepository
}

func NewStudyLogService(logs *repository.StudyLogRepository) *StudyLogService {
	return &StudyLogService{logs: logs}
}

// Log records a study session. Duration must be positive.
func (s *StudyLogService) Log(ctx context.Context, userID uint, subject string, durationMinutes int, notes string) (*model.StudyLog, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrValidation)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}

	entry := &model.StudyLog{
		UserID:          userID,
		Subject:         subject,
		DurationMinutes: durationMinutes,
		Notes:           strings.TrimSpace(notes),
		LoggedAt:        time.Now(),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Recent returns the latest sessions, newest first.
func (s *StudyLogService) Recent(ctx context.Context, userID uint, limit int) ([]model.StudyLog, error) {
	return s.logs.ListByUser(ctx, userID, limit)
}

// Delete removes a logged session.
func (s *StudyLogService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.logs.FindByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find study log: %w", err)
	}
	return s.logs.Delete(ctx, userID, id)
}
