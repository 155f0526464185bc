package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/database"
)

// BrandRepository implements repository.BrandRepository using PostgreSQL.
type BrandRepository struct {
	pool database.DBTX
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool database.DBTX) *BrandRepository {
	return &BrandRepository{pool: pool}
}

const brandColumns = `id, name, slug, logo, is_active, created_at, updated_at`

// Create inserts a new brand; the database assigns the serial ID.
func (r *BrandRepository) Create(ctx context.Context, b *domain.Brand) error {
	query := `
		INSERT INTO brands (name, slug, logo, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		b.Name, b.Slug, b.Logo, b.IsActive, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("brand", "slug", b.Slug)
		}
		return fmt.Errorf("insert brand: %w", err)
	}

	return nil
}

// GetByID retrieves a brand by its ID.
func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1`

	var b domain.Brand
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Slug, &b.Logo, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("brand", id)
		}
		return nil, fmt.Errorf("scan brand: %w", err)
	}

	return &b, nil
}

// ListAll returns all brands ordered by name.
func (r *BrandRepository) ListAll(ctx context.Context) ([]domain.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := make([]domain.Brand, 0)
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Slug, &b.Logo, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	return brands, nil
}

// Update modifies an existing brand.
func (r *BrandRepository) Update(ctx context.Context, b *domain.Brand) error {
	b.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE brands
		SET name = $1, slug = $2, logo = $3, is_active = $4, updated_at = $5
		WHERE id = $6`

	ct, err := r.pool.Exec(ctx, query, b.Name, b.Slug, b.Logo, b.IsActive, b.UpdatedAt, b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("brand", "slug", b.Slug)
		}
		return fmt.Errorf("update brand: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("brand", b.ID)
	}

	return nil
}

// Delete removes a brand by its ID.
func (r *BrandRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("brand", id)
	}

	return nil
}
