package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/bgpaten/ahyarpattani/models"
)

type Database struct {
	db                  *gorm.DB
	categoryRepo        *CategoryRepo
	projectRepo         *ProjectRepo
	projectCategoryRepo *ProjectCategoryRepo
	mediaRepo           *MediaRepo
	settingsRepo        *SettingsRepo
	contactMessageRepo  *ContactMessageRepo
	profileRepo         *ProfileRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                  db,
		categoryRepo:        NewCategoryRepo(db),
		projectRepo:         NewProjectRepo(db),
		projectCategoryRepo: NewProjectCategoryRepo(db),
		mediaRepo:           NewMediaRepo(db),
		settingsRepo:        NewSettingsRepo(db),
		contactMessageRepo:  NewContactMessageRepo(db),
		profileRepo:         NewProfileRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectCategoryRepo() *ProjectCategoryRepo {
	return d.projectCategoryRepo
}

func (d Database) MediaRepo() *MediaRepo {
	return d.mediaRepo
}

func (d Database) SettingsRepo() *SettingsRepo {
	return d.settingsRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

// Transaction runs fn against repositories bound to a single transaction.
// Returning an error from fn rolls everything back. fn must not use the
// outer Database.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Migrate creates or updates every table, including the project/category
// join table with its custom model.
func (d Database) Migrate(ctx context.Context) error {
	db := d.db.WithContext(ctx)
	if err := db.SetupJoinTable(&models.Project{}, "Categories", &models.ProjectCategory{}); err != nil {
		return err
	}
	return db.AutoMigrate(models.All()...)
}

func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
