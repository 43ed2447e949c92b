package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"study-assistant/internal/model"
)

// QuizRepository handles persistence of quiz attempts.
type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, result *model.QuizResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("create quiz result: %w", err)
	}
	return nil
}

func (r *QuizRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.QuizResult, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("taken_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []model.QuizResult
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *QuizRepository) FindByID(ctx context.Context, userID, id uint) (*model.QuizResult, error) {
	var result model.QuizResult
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// Totals returns the number of attempts and the sum of correct answers.
func (r *QuizRepository) Totals(ctx context.Context, userID uint) (attempts, correct int64, err error) {
	if err = r.db.WithContext(ctx).Model(&model.QuizResult{}).
		Where("user_id = ?", userID).Count(&attempts).Error; err != nil {
		return 0, 0, fmt.Errorf("count quiz attempts: %w", err)
	}

	var sum *int64
	if err = r.db.WithContext(ctx).Model(&model.QuizResult{}).
		Where("user_id = ?", userID).
		Select("SUM(score)").Scan(&sum).Error; err != nil {
		return 0, 0, fmt.Errorf("sum quiz scores: %w", err)
	}
	if sum != nil {
		correct = *sum
	}
	return attempts, correct, nil
}

// AverageRatio returns the mean of score/total over all attempts, in [0, 1].
// Zero when the user has no attempts.
func (r *QuizRepository) AverageRatio(ctx context.Context, userID uint) (float64, error) {
	var avg *float64
	if err := r.db.WithContext(ctx).Model(&model.QuizResult{}).
		Where("user_id = ? AND total_questions > 0", userID).
		Select("AVG(CAST(score AS REAL) / total_questions)").
		Scan(&avg).Error; err != nil {
		return 0, fmt.Errorf("average quiz score: %w", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
