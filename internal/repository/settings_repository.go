package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"howlongsince/internal/model"
)

// SettingsRepository persists the single settings row.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns gorm.ErrRecordNotFound until the row has been created.
func (r *SettingsRepository) Get(ctx context.Context) (*model.AppSettings, error) {
	var settings model.AppSettings
	if err := r.db.WithContext(ctx).Where("id = ?", model.SettingsID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) Create(ctx context.Context, settings *model.AppSettings) error {
	if err := r.db.WithContext(ctx).Create(settings).Error; err != nil {
		return fmt.Errorf("create settings: %w", err)
	}
	return nil
}

// Put upserts the settings row.
func (r *SettingsRepository) Put(ctx context.Context, settings *model.AppSettings) error {
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
