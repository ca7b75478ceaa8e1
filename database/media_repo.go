package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bgpaten/ahyarpattani/models"
)

type MediaRepo struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{db}
}

// FindByProject returns a project's gallery in display order.
func (r *MediaRepo) FindByProject(ctx context.Context, projectID uuid.UUID) ([]models.Media, error) {
	var media []models.Media
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("sort_order ASC").
		Find(&media).Error
	return media, err
}

func (r *MediaRepo) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&models.Media{}).Error
}

// BulkAdd inserts media in one statement. An empty slice is a no-op.
func (r *MediaRepo) BulkAdd(ctx context.Context, media []models.Media) error {
	if len(media) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&media).Error
}

func (r *MediaRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Media{}).Count(&n).Error
	return n, err
}
