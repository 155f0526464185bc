// Package service implements the settings business logic.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/settings/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/internal/settings/repository"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
)

// SettingsService implements the business logic for settings operations.
type SettingsService struct {
	repo   repository.SettingRepository
	logger *slog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingRepository, logger *slog.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// UpsertSetting validates the value against the type tag and stores the
// setting, replacing any previous value for the key.
func (s *SettingsService) UpsertSetting(ctx context.Context, key, settingType string, value json.RawMessage) (*domain.Setting, error) {
	if key == "" {
		return nil, apperrors.InvalidInput("setting key is required")
	}
	if !domain.IsValidType(settingType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown setting type %q", settingType))
	}
	if err := domain.ValidateValue(settingType, value); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	setting := &domain.Setting{
		Key:       key,
		Type:      settingType,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}

	s.logger.InfoContext(ctx, "setting updated",
		slog.String("key", key),
		slog.String("type", settingType),
	)

	return setting, nil
}

// GetSetting retrieves a setting by its key.
func (s *SettingsService) GetSetting(ctx context.Context, key string) (*domain.Setting, error) {
	if key == "" {
		return nil, apperrors.InvalidInput("setting key is required")
	}

	setting, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return setting, nil
}

// ListSettings returns all settings.
func (s *SettingsService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	settings, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}
