// Package postgres implements the settings repositories on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/settings/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/database"
)

// SettingRepository implements repository.SettingRepository using PostgreSQL.
type SettingRepository struct {
	pool database.DBTX
}

// NewSettingRepository creates a new PostgreSQL-backed setting repository.
func NewSettingRepository(pool database.DBTX) *SettingRepository {
	return &SettingRepository{pool: pool}
}

// Upsert inserts the setting or overwrites the existing row for the key.
func (r *SettingRepository) Upsert(ctx context.Context, s *domain.Setting) error {
	query := `
		INSERT INTO settings (key, type, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET type = EXCLUDED.type, value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := r.pool.Exec(ctx, query, s.Key, s.Type, s.Value, s.UpdatedAt); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}

	return nil
}

// GetByKey retrieves a setting by its key.
func (r *SettingRepository) GetByKey(ctx context.Context, key string) (*domain.Setting, error) {
	query := `SELECT key, type, value, updated_at FROM settings WHERE key = $1`

	var s domain.Setting
	err := r.pool.QueryRow(ctx, query, key).Scan(&s.Key, &s.Type, &s.Value, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("setting", key)
		}
		return nil, fmt.Errorf("scan setting: %w", err)
	}

	return &s, nil
}

// ListAll returns all settings ordered by key.
func (r *SettingRepository) ListAll(ctx context.Context) ([]domain.Setting, error) {
	query := `SELECT key, type, value, updated_at FROM settings ORDER BY key`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make([]domain.Setting, 0)
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.Key, &s.Type, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting row: %w", err)
		}
		settings = append(settings, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate setting rows: %w", err)
	}

	return settings, nil
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
