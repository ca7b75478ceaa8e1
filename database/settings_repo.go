package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/bgpaten/ahyarpattani/models"
)

type SettingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) *SettingsRepo {
	return &SettingsRepo{db}
}

// Find returns the settings row, or nil when none has been saved yet.
func (r *SettingsRepo) Find(ctx context.Context) (*models.Settings, error) {
	var rows []models.Settings
	if err := r.db.WithContext(ctx).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Save updates the existing row if there is one, otherwise inserts settings.
// Either way at most one row exists afterwards.
func (r *SettingsRepo) Save(ctx context.Context, settings *models.Settings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.Settings
		if err := tx.Limit(1).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return tx.Create(settings).Error
		}
		settings.ID = rows[0].ID
		return tx.Save(settings).Error
	})
}
