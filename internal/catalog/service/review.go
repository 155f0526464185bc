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

// ReviewInput holds the fields of a customer-submitted review.
type ReviewInput struct {
	CustomerName string
	Rating       int
	Comment      string
}

// ProductReviews bundles a product's approved reviews with their aggregate.
type ProductReviews struct {
	Reviews []domain.Review      `json:"reviews"`
	Summary domain.ReviewSummary `json:"summary"`
}

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, logger *slog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, logger: logger}
}

// CreateReview records a new review for an existing product. Reviews start
// unapproved and stay hidden from the public listing until approved.
func (s *ReviewService) CreateReview(ctx context.Context, productID int64, input ReviewInput) (*domain.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("check product: %w", err)
	}

	rv := &domain.Review{
		ProductID:    productID,
		CustomerName: input.CustomerName,
		Rating:       input.Rating,
		Comment:      input.Comment,
		IsApproved:   false,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.Int64("review_id", rv.ID),
		slog.Int64("product_id", productID),
	)

	return rv, nil
}

// ListProductReviews returns a product's approved reviews with the aggregate
// summary.
func (s *ReviewService) ListProductReviews(ctx context.Context, productID int64) (*ProductReviews, error) {
	reviews, err := s.reviews.ListByProduct(ctx, productID, true)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	summary, err := s.reviews.Summary(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("review summary: %w", err)
	}

	return &ProductReviews{Reviews: reviews, Summary: *summary}, nil
}

// ApproveReview marks a review as approved, making it publicly visible.
func (s *ReviewService) ApproveReview(ctx context.Context, id int64) error {
	if err := s.reviews.Approve(ctx, id); err != nil {
		return fmt.Errorf("approve review: %w", err)
	}

	s.logger.InfoContext(ctx, "review approved", slog.Int64("review_id", id))

	return nil
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(ctx context.Context, id int64) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.logger.InfoContext(ctx, "review deleted", slog.Int64("review_id", id))

	return nil
}
