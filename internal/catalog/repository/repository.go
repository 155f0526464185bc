package repository

import (
	"context"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/domain"
)

// ProductFilter narrows the product listing.
type ProductFilter struct {
	Search     *string
	CategoryID *int64
	BrandID    *int64
	Featured   *bool
	ActiveOnly bool
	Sort       string
	Page       int
	PerPage    int
}

// ProductRepository defines the persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines the persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	ListAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

// BrandRepository defines the persistence operations for brands.
type BrandRepository interface {
	Create(ctx context.Context, b *domain.Brand) error
	GetByID(ctx context.Context, id int64) (*domain.Brand, error)
	ListAll(ctx context.Context) ([]domain.Brand, error)
	Update(ctx context.Context, b *domain.Brand) error
	Delete(ctx context.Context, id int64) error
}

// ReviewRepository defines the persistence operations for product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID int64, approvedOnly bool) ([]domain.Review, error)
	Summary(ctx context.Context, productID int64) (*domain.ReviewSummary, error)
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
