package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

type CategoryInput struct {
	Name string              `json:"name" validate:"required,max=100"`
	Slug string              `json:"slug" validate:"max=100"`
	Type models.CategoryType `json:"type" validate:"omitempty,oneof=web mobile backend devops other"`
}

func (in CategoryInput) apply(c *models.Category) error {
	c.Name = strings.TrimSpace(in.Name)
	if c.Name == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	c.Slug = strings.TrimSpace(in.Slug)
	if c.Slug == "" {
		c.Slug = models.Slugify(c.Name)
	}
	c.Type = in.Type
	if c.Type == "" {
		c.Type = models.CategoryTypeOther
	}
	if !c.Type.Valid() {
		return errs.NewInvalidFieldError("type", "must be one of web, mobile, backend, devops, other")
	}
	return nil
}

type CategoryService struct {
	db database.Database
}

func NewCategoryService(db database.Database) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.db.CategoryRepo().FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "categories", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	category := &models.Category{}
	if err := in.apply(category); err != nil {
		return nil, err
	}
	if err := s.db.CategoryRepo().Add(ctx, category); err != nil {
		return nil, errs.NewDatabaseError("create", "category", err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	category, err := s.db.CategoryRepo().FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "category", err)
	}
	if err := in.apply(category); err != nil {
		return nil, err
	}
	if err := s.db.CategoryRepo().Update(ctx, category); err != nil {
		return nil, errs.NewDatabaseError("update", "category", err)
	}
	return category, nil
}

// Delete removes a category together with its project links.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.ProjectCategoryRepo().DeleteByCategory(ctx, id); err != nil {
			return errs.NewDatabaseError("delete", "project categories", err)
		}
		return tx.CategoryRepo().Delete(ctx, id)
	})
	if err != nil {
		return errs.NewTransactionFailedError("category delete", err)
	}
	return nil
}
