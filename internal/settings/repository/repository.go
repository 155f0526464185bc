// Package repository declares the persistence interfaces for settings.
package repository

import (
	"context"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/settings/domain"
)

// SettingRepository defines the persistence operations for settings.
type SettingRepository interface {
	Upsert(ctx context.Context, s *domain.Setting) error
	GetByKey(ctx context.Context, key string) (*domain.Setting, error)
	ListAll(ctx context.Context) ([]domain.Setting, error)
}

// ShippingCityRepository defines the persistence operations for shipping
// cities.
type ShippingCityRepository interface {
	Create(ctx context.Context, c *domain.ShippingCity) error
	GetByID(ctx context.Context, id int64) (*domain.ShippingCity, error)
	List(ctx context.Context, activeOnly bool) ([]domain.ShippingCity, error)
	Update(ctx context.Context, c *domain.ShippingCity) error
	Delete(ctx context.Context, id int64) error

	// ActiveCityCost resolves the shipping cost for an active city by name.
	// The second return is false when no active city matches.
	ActiveCityCost(ctx context.Context, name string) (int64, bool, error)
}
