package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsGetBeforeSave(t *testing.T) {
	settings, err := NewSettingsService(newTestDatabase(t)).Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings.FullName)
	assert.NotNil(t, settings.Socials)
}

func TestSettingsSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	svc := NewSettingsService(d)

	_, err := svc.Save(ctx, SettingsInput{
		FullName: " Ada Lovelace ",
		Headline: "Engineer",
		Socials:  map[string]string{"github": "https://github.com/ada", "": "https://x", "empty": " "},
	})
	require.NoError(t, err)

	_, err = svc.Save(ctx, SettingsInput{
		FullName: "Ada L.",
		Location: "London",
		Socials:  map[string]string{"linkedin": "https://linkedin.com/in/ada"},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.FullName)
	assert.Equal(t, "London", got.Location)
	assert.Empty(t, got.Headline)
	assert.Equal(t, "https://linkedin.com/in/ada", got.Socials["linkedin"])
	assert.NotContains(t, got.Socials, "github")

	var rows int64
	require.NoError(t, d.ProjectRepo().GetDB().Table("site_settings").Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}
