package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

func TestCategoryCreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newTestDatabase(t))

	c, err := svc.Create(ctx, CategoryInput{Name: "Machine Learning"})
	require.NoError(t, err)
	assert.Equal(t, "machine-learning", c.Slug)
	assert.Equal(t, models.CategoryTypeOther, c.Type)

	_, err = svc.Create(ctx, CategoryInput{Name: ""})
	assert.ErrorIs(t, err, errs.ErrMissingRequiredField)

	_, err = svc.Create(ctx, CategoryInput{Name: "Desktop", Type: "desktop"})
	assert.ErrorIs(t, err, errs.ErrInvalidField)
}

func TestCategoryListAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newTestDatabase(t))

	zeta, err := svc.Create(ctx, CategoryInput{Name: "Zeta"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CategoryInput{Name: "Alpha", Type: models.CategoryTypeWeb})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)

	updated, err := svc.Update(ctx, zeta.ID, CategoryInput{Name: "Zeta", Slug: "z", Type: models.CategoryTypeMobile})
	require.NoError(t, err)
	assert.Equal(t, "z", updated.Slug)
	assert.Equal(t, models.CategoryTypeMobile, updated.Type)

	_, err = svc.Update(ctx, uuid.New(), CategoryInput{Name: "Ghost"})
	assert.True(t, errs.IsNotFound(err))
}

func TestCategoryDeleteRemovesJoins(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	categories := NewCategoryService(d)
	projects := NewProjectService(d)

	web := createCategory(t, d, "Web", models.CategoryTypeWeb)
	ops := createCategory(t, d, "Ops", models.CategoryTypeDevops)
	id := uuid.New()
	_, err := projects.Save(ctx, id, ProjectForm{Title: "Linked", CategoryIDs: []uuid.UUID{web.ID, ops.ID}})
	require.NoError(t, err)

	require.NoError(t, categories.Delete(ctx, web.ID))

	rows, err := d.ProjectCategoryRepo().FindByCategory(ctx, web.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	project, err := d.ProjectRepo().FindByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, project.Categories, 1)
	assert.Equal(t, ops.ID, project.Categories[0].ID)

	assert.True(t, errs.IsNotFound(categories.Delete(ctx, web.ID)))
}
