package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

func newTestDatabase(t *testing.T) Database {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	d := New(db)
	require.NoError(t, d.Migrate(context.Background()))
	return d
}

func addProject(t *testing.T, d Database, title string, status models.ProjectStatus, sortOrder int) *models.Project {
	t.Helper()
	p := &models.Project{
		Title:     title,
		Slug:      models.Slugify(title),
		Status:    status,
		SortOrder: sortOrder,
		Stack:     datatypes.JSONSlice[string]{"Go"},
	}
	require.NoError(t, d.ProjectRepo().Add(context.Background(), p))
	return p
}

func TestProjectRepoPublishedOrdering(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	addProject(t, d, "Second", models.ProjectStatusPublished, 2)
	addProject(t, d, "Hidden", models.ProjectStatusDraft, 0)
	addProject(t, d, "First", models.ProjectStatusPublished, 1)

	projects, err := d.ProjectRepo().FindPublished(ctx, false)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "First", projects[0].Title)
	assert.Equal(t, "Second", projects[1].Title)
	assert.Equal(t, []string{"Go"}, []string(projects[0].Stack))
}

func TestProjectRepoFeaturedFilter(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	star := addProject(t, d, "Star", models.ProjectStatusPublished, 0)
	star.Featured = true
	require.NoError(t, d.ProjectRepo().Update(ctx, star))
	addProject(t, d, "Plain", models.ProjectStatusPublished, 1)

	projects, err := d.ProjectRepo().FindPublished(ctx, true)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Star", projects[0].Title)
}

func TestProjectRepoSearch(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	addProject(t, d, "Weather Station", models.ProjectStatusDraft, 0)
	addProject(t, d, "Chat App", models.ProjectStatusPublished, 0)

	all, err := d.ProjectRepo().FindAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := d.ProjectRepo().FindAll(ctx, "WEATHER")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Weather Station", found[0].Title)

	bySlug, err := d.ProjectRepo().FindAll(ctx, "chat-app")
	require.NoError(t, err)
	require.Len(t, bySlug, 1)
}

func TestProjectRepoDetailPreloads(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	p := addProject(t, d, "Demo", models.ProjectStatusPublished, 0)
	web := &models.Category{Name: "Web", Slug: "web", Type: models.CategoryTypeWeb}
	require.NoError(t, d.CategoryRepo().Add(ctx, web))
	require.NoError(t, d.ProjectCategoryRepo().BulkAdd(ctx, []models.ProjectCategory{{ProjectID: p.ID, CategoryID: web.ID}}))
	require.NoError(t, d.MediaRepo().BulkAdd(ctx, []models.Media{
		{ProjectID: p.ID, URL: "b.png", SortOrder: 1},
		{ProjectID: p.ID, URL: "a.png", SortOrder: 0},
	}))

	got, err := d.ProjectRepo().FindPublishedBySlug(ctx, "demo")
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, models.CategoryTypeWeb, got.Categories[0].Type)
	require.Len(t, got.Media, 2)
	assert.Equal(t, "a.png", got.Media[0].URL)
	assert.Equal(t, models.MediaTypeImage, got.Media[0].Type)
	assert.Equal(t, models.OrientationLandscape, got.Media[0].Orientation)

	_, err = d.ProjectRepo().FindPublishedBySlug(ctx, "missing")
	assert.True(t, errs.IsNotFound(err))
}

func TestProjectRepoFindOthers(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	current := addProject(t, d, "Main", models.ProjectStatusPublished, 0)
	for i := 1; i <= 4; i++ {
		addProject(t, d, "Other "+string(rune('A'+i)), models.ProjectStatusPublished, i)
	}
	addProject(t, d, "Draft", models.ProjectStatusDraft, 0)

	others, err := d.ProjectRepo().FindOthers(ctx, current.ID, 3)
	require.NoError(t, err)
	require.Len(t, others, 3)
	for _, o := range others {
		assert.NotEqual(t, current.ID, o.ID)
		assert.Equal(t, models.ProjectStatusPublished, o.Status)
	}
}

func TestProjectRepoFindRowAndDelete(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	row, err := d.ProjectRepo().FindRowByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, row)

	p := addProject(t, d, "Gone", models.ProjectStatusDraft, 0)
	require.NoError(t, d.ProjectRepo().Delete(ctx, p.ID))
	assert.True(t, errs.IsNotFound(d.ProjectRepo().Delete(ctx, p.ID)))

	_, err = d.ProjectRepo().FindByID(ctx, p.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestProjectRepoCount(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	addProject(t, d, "One", models.ProjectStatusPublished, 0)
	addProject(t, d, "Two", models.ProjectStatusDraft, 0)
	addProject(t, d, "Three", models.ProjectStatusDraft, 0)

	total, err := d.ProjectRepo().Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	drafts, err := d.ProjectRepo().Count(ctx, models.ProjectStatusDraft)
	require.NoError(t, err)
	assert.Equal(t, int64(2), drafts)
}

func TestCategoryRepo(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	ops := &models.Category{Name: "Ops", Slug: "ops"}
	require.NoError(t, d.CategoryRepo().Add(ctx, ops))
	assert.Equal(t, models.CategoryTypeOther, ops.Type)
	require.NoError(t, d.CategoryRepo().Add(ctx, &models.Category{Name: "Apps", Slug: "apps", Type: models.CategoryTypeMobile}))

	all, err := d.CategoryRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Apps", all[0].Name)

	found, err := d.CategoryRepo().FindByIDs(ctx, []uuid.UUID{ops.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 1)

	ops.Type = models.CategoryTypeDevops
	require.NoError(t, d.CategoryRepo().Update(ctx, ops))
	got, err := d.CategoryRepo().FindByID(ctx, ops.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTypeDevops, got.Type)

	require.NoError(t, d.CategoryRepo().Delete(ctx, ops.ID))
	_, err = d.CategoryRepo().FindByID(ctx, ops.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestSettingsRepoKeepsSingleRow(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	got, err := d.SettingsRepo().Find(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, d.SettingsRepo().Save(ctx, &models.Settings{
		FullName: "Ada",
		Socials:  datatypes.JSONMap{"github": "https://github.com/ada"},
	}))
	require.NoError(t, d.SettingsRepo().Save(ctx, &models.Settings{FullName: "Ada Lovelace", Location: "London"}))

	var count int64
	require.NoError(t, d.db.Model(&models.Settings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err = d.SettingsRepo().Find(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, "London", got.Location)
}

func TestContactMessageRepo(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	first := &models.ContactMessage{Name: "A", Email: "a@example.com", Message: "hi", CreatedAt: time.Now().Add(-time.Hour)}
	second := &models.ContactMessage{Name: "B", Email: "b@example.com", Message: "hello"}
	require.NoError(t, d.ContactMessageRepo().Add(ctx, first))
	require.NoError(t, d.ContactMessageRepo().Add(ctx, second))

	msgs, err := d.ContactMessageRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "B", msgs[0].Name)
	assert.False(t, msgs[0].Read)

	unread, err := d.ContactMessageRepo().Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	updated, err := d.ContactMessageRepo().SetRead(ctx, first.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Read)

	unread, err = d.ContactMessageRepo().Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	_, err = d.ContactMessageRepo().SetRead(ctx, uuid.New(), true)
	assert.True(t, errs.IsNotFound(err))
}

func TestProfileRepoUpsert(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	p := &models.Profile{Email: " Owner@Example.com ", PasswordHash: "x", Role: models.RoleViewer}
	require.NoError(t, d.ProfileRepo().Add(ctx, p))

	got, err := d.ProfileRepo().FindByEmail(ctx, "OWNER@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	require.NoError(t, d.ProfileRepo().Upsert(ctx, &models.Profile{Email: "owner@example.com", PasswordHash: "y", Role: models.RoleAdmin}))
	got, err = d.ProfileRepo().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.Equal(t, "y", got.PasswordHash)

	_, err = d.ProfileRepo().FindByEmail(ctx, "nobody@example.com")
	assert.True(t, errs.IsNotFound(err))
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	err := d.Transaction(ctx, func(tx Database) error {
		require.NoError(t, tx.CategoryRepo().Add(ctx, &models.Category{Name: "Temp", Slug: "temp"}))
		return errs.NewBadRequestError("abort")
	})
	require.Error(t, err)

	n, err := d.CategoryRepo().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
