package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/settings/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/settings/repository"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
)

// ShippingCityInput holds the writable fields of a shipping city.
type ShippingCityInput struct {
	Name     string
	Cost     int64
	IsActive bool
}

// ShippingService implements the business logic for the shipping city table.
// It also serves checkout's city cost lookups.
type ShippingService struct {
	repo   repository.ShippingCityRepository
	logger *slog.Logger
}

// NewShippingService creates a new shipping service.
func NewShippingService(repo repository.ShippingCityRepository, logger *slog.Logger) *ShippingService {
	return &ShippingService{repo: repo, logger: logger}
}

// ListCities returns shipping cities; activeOnly restricts to the cities
// exposed to the storefront.
func (s *ShippingService) ListCities(ctx context.Context, activeOnly bool) ([]domain.ShippingCity, error) {
	cities, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list shipping cities: %w", err)
	}
	return cities, nil
}

// CreateCity adds a new shipping city.
func (s *ShippingService) CreateCity(ctx context.Context, input ShippingCityInput) (*domain.ShippingCity, error) {
	if input.Cost < 0 {
		return nil, apperrors.InvalidInput("shipping cost must not be negative")
	}

	now := time.Now().UTC()
	c := &domain.ShippingCity{
		Name:      input.Name,
		Cost:      input.Cost,
		IsActive:  input.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create shipping city: %w", err)
	}

	s.logger.InfoContext(ctx, "shipping city created",
		slog.Int64("city_id", c.ID),
		slog.String("name", c.Name),
		slog.Int64("cost", c.Cost),
	)

	return c, nil
}

// UpdateCity overwrites a shipping city's writable fields.
func (s *ShippingService) UpdateCity(ctx context.Context, id int64, input ShippingCityInput) (*domain.ShippingCity, error) {
	if input.Cost < 0 {
		return nil, apperrors.InvalidInput("shipping cost must not be negative")
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get shipping city for update: %w", err)
	}

	c.Name = input.Name
	c.Cost = input.Cost
	c.IsActive = input.IsActive

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update shipping city: %w", err)
	}

	s.logger.InfoContext(ctx, "shipping city updated", slog.Int64("city_id", c.ID))

	return c, nil
}

// DeleteCity removes a shipping city.
func (s *ShippingService) DeleteCity(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete shipping city: %w", err)
	}

	s.logger.InfoContext(ctx, "shipping city deleted", slog.Int64("city_id", id))

	return nil
}

// ActiveCityCost resolves the configured cost for an active city by name.
func (s *ShippingService) ActiveCityCost(ctx context.Context, name string) (int64, bool, error) {
	return s.repo.ActiveCityCost(ctx, name)
}
