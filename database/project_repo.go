package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

func orderedMedia(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func orderedCategories(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

// FindPublished returns published projects with their categories, ordered
// by sort_order then newest first.
func (r *ProjectRepo) FindPublished(ctx context.Context, featuredOnly bool) ([]models.Project, error) {
	var projects []models.Project
	q := r.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Where("status = ?", models.ProjectStatusPublished)
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}
	err := q.Order("sort_order ASC").Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindPublishedBySlug returns the oldest published project with slug, with
// categories and ordered media.
func (r *ProjectRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Preload("Media", orderedMedia).
		Where("slug = ? AND status = ?", slug, models.ProjectStatusPublished).
		Order("created_at ASC").
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindOthers returns up to limit published projects other than excludeID.
func (r *ProjectRepo) FindOthers(ctx context.Context, excludeID uuid.UUID, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Where("status = ? AND id <> ?", models.ProjectStatusPublished, excludeID).
		Order("sort_order ASC").Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// FindAll returns projects of every status, newest first. A non-empty
// search keeps only projects whose title or slug contains it, ignoring case.
func (r *ProjectRepo) FindAll(ctx context.Context, search string) ([]models.Project, error) {
	var projects []models.Project
	q := r.db.WithContext(ctx).Preload("Categories", orderedCategories)
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(slug) LIKE ?", pattern, pattern)
	}
	err := q.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project with its categories and ordered media.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Preload("Media", orderedMedia).
		Where("id = ?", id).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindRowByID returns the bare project row, or nil when none exists.
func (r *ProjectRepo) FindRowByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&projects).Error; err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}
	return &projects[0], nil
}

// Add inserts a new project row. Associations are written by their own repos.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// Update overwrites every column of an existing project row.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// Delete removes a project row by id.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}
	return nil
}

// Count returns the number of projects, limited to status when non-empty.
func (r *ProjectRepo) Count(ctx context.Context, status models.ProjectStatus) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&models.Project{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}
