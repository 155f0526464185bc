package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/repository"
)

// BrandInput holds the writable fields of a brand.
type BrandInput struct {
	Name     string
	Slug     string
	Logo     string
	IsActive bool
}

// BrandService implements the business logic for brand operations.
type BrandService struct {
	repo   repository.BrandRepository
	logger *slog.Logger
}

// NewBrandService creates a new brand service.
func NewBrandService(repo repository.BrandRepository, logger *slog.Logger) *BrandService {
	return &BrandService{repo: repo, logger: logger}
}

// ListBrands returns all brands.
func (s *BrandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

// CreateBrand persists a new brand.
func (s *BrandService) CreateBrand(ctx context.Context, input BrandInput) (*domain.Brand, error) {
	now := time.Now().UTC()
	b := &domain.Brand{
		Name:      input.Name,
		Slug:      input.Slug,
		Logo:      input.Logo,
		IsActive:  input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}

	s.logger.InfoContext(ctx, "brand created",
		slog.Int64("brand_id", b.ID),
		slog.String("slug", b.Slug),
	)

	return b, nil
}

// UpdateBrand overwrites a brand's writable fields.
func (s *BrandService) UpdateBrand(ctx context.Context, id int64, input BrandInput) (*domain.Brand, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get brand for update: %w", err)
	}

	b.Name = input.Name
	b.Slug = input.Slug
	b.Logo = input.Logo
	b.IsActive = input.IsActive

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update brand: %w", err)
	}

	s.logger.InfoContext(ctx, "brand updated", slog.Int64("brand_id", b.ID))

	return b, nil
}

// DeleteBrand removes a brand.
func (s *BrandService) DeleteBrand(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}

	s.logger.InfoContext(ctx, "brand deleted", slog.Int64("brand_id", id))

	return nil
}
