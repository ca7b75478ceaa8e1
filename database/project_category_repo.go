package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bgpaten/ahyarpattani/models"
)

type ProjectCategoryRepo struct {
	db *gorm.DB
}

func NewProjectCategoryRepo(db *gorm.DB) *ProjectCategoryRepo {
	return &ProjectCategoryRepo{db}
}

func (r *ProjectCategoryRepo) FindByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectCategory, error) {
	var rows []models.ProjectCategory
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&rows).Error
	return rows, err
}

func (r *ProjectCategoryRepo) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.ProjectCategory, error) {
	var rows []models.ProjectCategory
	err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&rows).Error
	return rows, err
}

func (r *ProjectCategoryRepo) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&models.ProjectCategory{}).Error
}

func (r *ProjectCategoryRepo) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("category_id = ?", categoryID).Delete(&models.ProjectCategory{}).Error
}

// BulkAdd inserts rows in one statement. An empty slice is a no-op.
func (r *ProjectCategoryRepo) BulkAdd(ctx context.Context, rows []models.ProjectCategory) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
