// Package service implements the catalog business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/repository"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
)

// ProductInput holds the writable fields of a product.
type ProductInput struct {
	Name        string
	Slug        string
	Description string
	Price       int64
	OldPrice    *int64
	Image       string
	BrandID     *int64
	CategoryID  *int64
	Stock       int
	IsActive    bool
	IsFeatured  bool
}

// ProductService implements the business logic for product operations.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// ListProducts returns products matching the filter with the total count.
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	if filter.Sort != "" && !domain.IsValidSortKey(filter.Sort) {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("unknown sort key %q", filter.Sort))
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// GetProduct retrieves a product by its numeric ID or, failing that, its slug.
func (s *ProductService) GetProduct(ctx context.Context, idOrSlug string) (*domain.Product, error) {
	if idOrSlug == "" {
		return nil, apperrors.InvalidInput("product id or slug is required")
	}

	if id, err := strconv.ParseInt(idOrSlug, 10, 64); err == nil && id > 0 {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
		return p, nil
	}

	p, err := s.repo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return p, nil
}

// CreateProduct persists a new product.
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()

	p := &domain.Product{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Price:       input.Price,
		OldPrice:    input.OldPrice,
		Image:       input.Image,
		BrandID:     input.BrandID,
		CategoryID:  input.CategoryID,
		Stock:       input.Stock,
		IsActive:    input.IsActive,
		IsFeatured:  input.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", p.ID),
		slog.String("slug", p.Slug),
	)

	return p, nil
}

// UpdateProduct overwrites a product's writable fields.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	p.Name = input.Name
	p.Slug = input.Slug
	p.Description = input.Description
	p.Price = input.Price
	p.OldPrice = input.OldPrice
	p.Image = input.Image
	p.BrandID = input.BrandID
	p.CategoryID = input.CategoryID
	p.Stock = input.Stock
	p.IsActive = input.IsActive
	p.IsFeatured = input.IsFeatured

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.logger.InfoContext(ctx, "product updated", slog.Int64("product_id", p.ID))

	return p, nil
}

// DeleteProduct removes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted", slog.Int64("product_id", id))

	return nil
}
