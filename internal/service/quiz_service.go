package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"study-assistant/internal/ai"
	"study-assistant/internal/model"
	"study-assistant/internal/repository"
)

// QuizService stores finished quiz attempts and replays them for review.
type QuizService struct {
	quizzes *repository.QuizRepository
}

func NewQuizService(quizzes *repository.QuizRepository) *QuizService {
	return &QuizService{quizzes: quizzes}
}

// RecordAttempt persists a finished quiz with its full question set so the
// review hub can replay it later.
func (s *QuizService) RecordAttempt(ctx context.Context, userID uint, topic string, questions []ai.QuizQuestion, score int) (*model.QuizResult, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrValidation)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrValidation)
	}
	if score < 0 || score > len(questions) {
		return nil, fmt.Errorf("%w: score out of range", ErrValidation)
	}

	raw, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}

	result := &model.QuizResult{
		UserID:         userID,
		Topic:          topic,
		Score:          score,
		TotalQuestions: len(questions),
		QuestionsJSON:  string(raw),
		TakenAt:        time.Now(),
	}
	if err := s.quizzes.Create(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// History returns past attempts, newest first.
func (s *QuizService) History(ctx context.Context, userID uint, limit int) ([]model.QuizResult, error) {
	return s.quizzes.ListByUser(ctx, userID, limit)
}

// Replay loads a stored attempt and decodes its question set.
func (s *QuizService) Replay(ctx context.Context, userID, resultID uint) (*model.QuizResult, []ai.QuizQuestion, error) {
	result, err := s.quizzes.FindByID(ctx, userID, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("find quiz result: %w", err)
	}

	var questions []ai.QuizQuestion
	if err := json.Unmarshal([]byte(result.QuestionsJSON), &questions); err != nil {
		return nil, nil, fmt.Errorf("decode stored questions: %w", err)
	}
	return result, questions, nil
}
