package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgpaten/ahyarpattani/models"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	projects := NewProjectService(d)
	contact := NewContactService(d, nil)

	createCategory(t, d, "Web", models.CategoryTypeWeb)
	createCategory(t, d, "Ops", models.CategoryTypeDevops)

	_, err := projects.Save(ctx, uuid.New(), ProjectForm{
		Title:   "Live",
		Status:  models.ProjectStatusPublished,
		Gallery: []GalleryItem{{URL: "a.png"}, {URL: "b.png"}},
	})
	require.NoError(t, err)
	_, err = projects.CreateDraft(ctx)
	require.NoError(t, err)

	first, err := contact.Submit(ctx, ContactInput{Name: "A", Email: "a@example.com", Message: "one"})
	require.NoError(t, err)
	_, err = contact.Submit(ctx, ContactInput{Name: "B", Email: "b@example.com", Message: "two"})
	require.NoError(t, err)
	_, err = contact.MarkRead(ctx, first.ID, true)
	require.NoError(t, err)

	stats, err := NewDashboardService(d).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{
		Projects:       2,
		Published:      1,
		Drafts:         1,
		Categories:     2,
		Media:          2,
		Messages:       2,
		UnreadMessages: 1,
	}, *stats)
}
