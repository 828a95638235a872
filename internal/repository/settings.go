package repository

import (
	"context"
	"fmt"

	"studio-backend/internal/models"
	"studio-backend/internal/store"
)

const (
	settingsKey     = "system_settings"
	settingsVersion = "1.0.0"
)

// SettingsPatch holds the settings fields that may change
type SettingsPatch struct {
	Initialized *bool
	Version     *string
	LastBackup  *string
}

// SettingsRepository handles the system_settings singleton
type SettingsRepository struct {
	store *store.Store
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(s *store.Store) *SettingsRepository {
	return &SettingsRepository{store: s}
}

// Get returns the stored settings, or the defaults when none exist
func (r *SettingsRepository) Get(ctx context.Context) (*models.SystemSettings, error) {
	var settings models.SystemSettings
	found, err := r.store.Get(ctx, settingsKey, &settings)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if !found {
		return &models.SystemSettings{
			Initialized: true,
			Version:     settingsVersion,
			LastBackup:  models.Now(),
		}, nil
	}
	return &settings, nil
}

// Update merges patch over the current settings
func (r *SettingsRepository) Update(ctx context.Context, patch SettingsPatch) (*models.SystemSettings, error) {
	settings, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if patch.Initialized != nil {
		settings.Initialized = *patch.Initialized
	}
	if patch.Version != nil {
		settings.Version = *patch.Version
	}
	if patch.LastBackup != nil {
		settings.LastBackup = *patch.LastBackup
	}

	if err := r.store.Set(ctx, settingsKey, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
