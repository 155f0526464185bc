package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/settings/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/database"
)

// ShippingCityRepository implements repository.ShippingCityRepository using
// PostgreSQL.
type ShippingCityRepository struct {
	pool database.DBTX
}

// NewShippingCityRepository creates a new PostgreSQL-backed shipping city
// repository.
func NewShippingCityRepository(pool database.DBTX) *ShippingCityRepository {
	return &ShippingCityRepository{pool: pool}
}

const shippingCityColumns = `id, name, cost, is_active, created_at, updated_at`

// Create inserts a new shipping city; the database assigns the serial ID.
func (r *ShippingCityRepository) Create(ctx context.Context, c *domain.ShippingCity) error {
	query := `
		INSERT INTO shipping_cities (name, cost, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, c.Name, c.Cost, c.IsActive, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("shipping city", "name", c.Name)
		}
		return fmt.Errorf("insert shipping city: %w", err)
	}

	return nil
}

// GetByID retrieves a shipping city by its ID.
func (r *ShippingCityRepository) GetByID(ctx context.Context, id int64) (*domain.ShippingCity, error) {
	query := `SELECT ` + shippingCityColumns + ` FROM shipping_cities WHERE id = $1`

	var c domain.ShippingCity
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Cost, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("shipping city", id)
		}
		return nil, fmt.Errorf("scan shipping city: %w", err)
	}

	return &c, nil
}

// List returns shipping cities ordered by name, optionally active only.
func (r *ShippingCityRepository) List(ctx context.Context, activeOnly bool) ([]domain.ShippingCity, error) {
	query := `SELECT ` + shippingCityColumns + ` FROM shipping_cities`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list shipping cities: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.ShippingCity, 0)
	for rows.Next() {
		var c domain.ShippingCity
		if err := rows.Scan(&c.ID, &c.Name, &c.Cost, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shipping city row: %w", err)
		}
		cities = append(cities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipping city rows: %w", err)
	}

	return cities, nil
}

// Update modifies an existing shipping city.
func (r *ShippingCityRepository) Update(ctx context.Context, c *domain.ShippingCity) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE shipping_cities
		SET name = $1, cost = $2, is_active = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.pool.Exec(ctx, query, c.Name, c.Cost, c.IsActive, c.UpdatedAt, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("shipping city", "name", c.Name)
		}
		return fmt.Errorf("update shipping city: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("shipping city", c.ID)
	}

	return nil
}

// Delete removes a shipping city by its ID.
func (r *ShippingCityRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM shipping_cities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipping city: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("shipping city", id)
	}

	return nil
}

// ActiveCityCost resolves the configured cost for an active city by name.
// City names are matched case-insensitively.
func (r *ShippingCityRepository) ActiveCityCost(ctx context.Context, name string) (int64, bool, error) {
	query := `SELECT cost FROM shipping_cities WHERE LOWER(name) = LOWER($1) AND is_active = TRUE`

	var cost int64
	err := r.pool.QueryRow(ctx, query, name).Scan(&cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("lookup city cost: %w", err)
	}

	return cost, true, nil
}
