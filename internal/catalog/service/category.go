package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/repository"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
)

// CategoryInput holds the writable fields of a category.
type CategoryInput struct {
	Name      string
	Slug      string
	ParentID  *int64
	Image     string
	SortOrder int
	IsActive  bool
}

// CategoryService implements the business logic for category operations.
type CategoryService struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// ListCategories returns the flat category list.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CategoryTree returns the categories assembled into a parent/child tree.
func (s *CategoryService) CategoryTree(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories for tree: %w", err)
	}
	return domain.BuildTree(categories), nil
}

// CreateCategory persists a new category. A parent, when given, must exist.
func (s *CategoryService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	if input.ParentID != nil {
		if _, err := s.repo.GetByID(ctx, *input.ParentID); err != nil {
			return nil, fmt.Errorf("check parent category: %w", err)
		}
	}

	now := time.Now().UTC()
	c := &domain.Category{
		Name:      input.Name,
		Slug:      input.Slug,
		ParentID:  input.ParentID,
		Image:     input.Image,
		SortOrder: input.SortOrder,
		IsActive:  input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.InfoContext(ctx, "category created",
		slog.Int64("category_id", c.ID),
		slog.String("slug", c.Slug),
	)

	return c, nil
}

// UpdateCategory overwrites a category's writable fields.
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*domain.Category, error) {
	if input.ParentID != nil && *input.ParentID == id {
		return nil, apperrors.InvalidInput("category cannot be its own parent")
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category for update: %w", err)
	}

	c.Name = input.Name
	c.Slug = input.Slug
	c.ParentID = input.ParentID
	c.Image = input.Image
	c.SortOrder = input.SortOrder
	c.IsActive = input.IsActive

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.logger.InfoContext(ctx, "category updated", slog.Int64("category_id", c.ID))

	return c, nil
}

// DeleteCategory removes a category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.logger.InfoContext(ctx, "category deleted", slog.Int64("category_id", id))

	return nil
}
