package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgpaten/ahyarpattani/models"
)

func TestEditorCreateFlow(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	svc := NewProjectService(d)
	web := createCategory(t, d, "Web", models.CategoryTypeWeb)

	e, err := svc.OpenEditor(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, e.IsNew())
	assert.Equal(t, EditorEditing, e.State())

	require.NoError(t, e.SetTitle("Demo"))
	assert.Equal(t, "demo", e.Form().Slug)
	require.NoError(t, e.ToggleCategory(web.ID))
	require.NoError(t, e.AddStack("Go"))
	require.NoError(t, e.AddStack("Go"))
	require.NoError(t, e.AddStack("  "))
	require.NoError(t, e.SetStatus(models.ProjectStatusPublished))

	saved, err := e.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, EditorDone, e.State())
	assert.Equal(t, e.ID(), saved.ID)
	assert.Equal(t, "demo", saved.Slug)
	assert.Equal(t, []string{"Go"}, []string(saved.Stack))

	assert.ErrorIs(t, e.SetTitle("late"), ErrEditorClosed)
	_, err = e.Save(ctx)
	assert.ErrorIs(t, err, ErrEditorClosed)

	total, err := d.ProjectRepo().Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestEditorSlugOverride(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(newTestDatabase(t))

	e, err := svc.OpenEditor(ctx, uuid.Nil)
	require.NoError(t, err)

	require.NoError(t, e.SetTitle("First Title"))
	require.NoError(t, e.SetSlug("custom"))
	require.NoError(t, e.SetTitle("Second Title"))
	assert.Equal(t, "custom", e.Form().Slug)

	require.NoError(t, e.SetSlug(""))
	assert.Equal(t, "second-title", e.Form().Slug)
}

func TestEditorGalleryMutations(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(newTestDatabase(t))

	e, err := svc.OpenEditor(ctx, uuid.Nil)
	require.NoError(t, err)
	for _, url := range []string{"A", "B", "C", "D"} {
		require.NoError(t, e.AddMedia(GalleryItem{URL: url}))
	}
	require.NoError(t, e.MoveMedia(1, 0))
	require.NoError(t, e.RemoveMedia(3))
	require.NoError(t, e.RemoveMedia(10))
	require.NoError(t, e.MoveMedia(0, 5))

	var urls []string
	for _, g := range e.Form().Gallery {
		urls = append(urls, g.URL)
	}
	assert.Equal(t, []string{"B", "A", "C"}, urls)

	require.NoError(t, e.SetTitle("Ordered"))
	saved, err := e.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, mediaURLs(saved.Media))
}

func TestEditorFailureThenRetry(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	svc := NewProjectService(d)

	e, err := svc.OpenEditor(ctx, uuid.Nil)
	require.NoError(t, err)
	missing := uuid.New()
	require.NoError(t, e.SetTitle("Retry"))
	require.NoError(t, e.ToggleCategory(missing))

	_, err = e.Save(ctx)
	require.Error(t, err)
	assert.Equal(t, EditorError, e.State())
	assert.Equal(t, err, e.Err())
	assert.Equal(t, "Retry", e.Form().Title)

	require.NoError(t, e.ToggleCategory(missing))
	assert.Equal(t, EditorEditing, e.State())
	assert.NoError(t, e.Err())

	_, err = e.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, EditorDone, e.State())
}

func TestEditorLoadsExistingProject(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	svc := NewProjectService(d)
	id := uuid.New()

	_, err := svc.Save(ctx, id, ProjectForm{
		Title:   "Existing",
		Slug:    "hand-picked",
		Stack:   []string{"Go", "Redis"},
		Gallery: []GalleryItem{{URL: "1.png"}, {URL: "2.png"}},
	})
	require.NoError(t, err)

	e, err := svc.OpenEditor(ctx, id)
	require.NoError(t, err)
	assert.False(t, e.IsNew())
	assert.Equal(t, id, e.ID())

	require.NoError(t, e.SetTitle("Renamed"))
	assert.Equal(t, "hand-picked", e.Form().Slug)
	require.NoError(t, e.RemoveStack("Go"))
	require.NoError(t, e.SetLinks("https://demo.example.com", "https://github.com/x/y"))
	require.NoError(t, e.SetFeatured(true))

	saved, err := e.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", saved.Title)
	assert.Equal(t, []string{"Redis"}, []string(saved.Stack))
	assert.True(t, saved.Featured)
	assert.Equal(t, "https://github.com/x/y", saved.RepoURL)
	assert.Len(t, saved.Media, 2)
}
