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

// CategoryService manages task categories. The "General" category is the
// fallback for reassignment and can never be deleted.
type CategoryService struct {
	categories *repository.CategoryRepository
}

func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, userID uint, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	if _, err := s.categories.FindByName(ctx, userID, name); err == nil {
		return nil, ErrDuplicateCategory
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check category: %w", err)
	}

	category := &model.Category{UserID: userID, Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

// Delete removes a category and moves its tasks into "General". Deleting
// "General" itself is refused.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uint) error {
	category, err := s.categories.FindByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}
	if category.Name == model.DefaultCategoryName {
		return ErrProtectedCategory
	}

	fallback, err := s.categories.GetOrCreate(ctx, userID, model.DefaultCategoryName)
	if err != nil {
		return fmt.Errorf("resolve fallback category: %w", err)
	}

	return s.categories.DeleteReassigningTasks(ctx, userID, categoryID, fallback.ID)
}
