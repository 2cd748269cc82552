package service

import (
	"context"
	"fmt"
	"strings"

	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// CategoryService wraps category business rules.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create adds a subject for the user. Names must be unique among the user's
// non-archived categories.
func (s *CategoryService) Create(ctx context.Context, userID uint, name, color, icon string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	existing, err := s.repo.FindActiveByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: category %q already exists", ErrValidation, name)
	}

	category := model.Category{
		UserID: userID,
		Name:   name,
		Color:  color,
		Icon:   icon,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Archive soft-deletes a category; it stays referenced by old sessions and
// schedule items but is excluded from future scheduling.
func (s *CategoryService) Archive(ctx context.Context, userID, id uint) error {
	return s.repo.Archive(ctx, userID, id)
}
