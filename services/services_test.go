package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/models"
)

func newTestDatabase(t *testing.T) database.Database {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "services.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	d := database.New(db)
	require.NoError(t, d.Migrate(context.Background()))
	return d
}

func createCategory(t *testing.T, d database.Database, name string, typ models.CategoryType) *models.Category {
	t.Helper()
	c, err := NewCategoryService(d).Create(context.Background(), CategoryInput{Name: name, Type: typ})
	require.NoError(t, err)
	return c
}
