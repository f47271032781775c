// File: internal/category/repository_test.go
package category

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCategoryRepo(t *testing.T) Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Category{}))
	return NewGORMRepository(db)
}

func TestCategoryRepository_DuplicateNamesPermitted(t *testing.T) {
	repo := setupCategoryRepo(t)
	ctx := context.Background()

	first := &Category{Name: "Parks", Slug: "parks"}
	second := &Category{Name: "Parks", Slug: "parks"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCategoryRepository_FindByName_OldestWins(t *testing.T) {
	repo := setupCategoryRepo(t)
	ctx := context.Background()

	older := &Category{Name: "Museums", Slug: "museums"}
	older.CreatedAt = time.Now().Add(-time.Hour)
	older.UpdatedAt = older.CreatedAt
	require.NoError(t, repo.Create(ctx, older))

	newer := &Category{Name: "Museums", Slug: "museums"}
	require.NoError(t, repo.Create(ctx, newer))

	found, err := repo.FindByName(ctx, "Museums")
	require.NoError(t, err)
	assert.Equal(t, older.ID, found.ID, "ambiguous names resolve to the oldest category")
}

func TestCategoryRepository_FindByName_TrimsInput(t *testing.T) {
	repo := setupCategoryRepo(t)
	ctx := context.Background()

	c := &Category{Name: "Cafes", Slug: "cafes"}
	require.NoError(t, repo.Create(ctx, c))

	found, err := repo.FindByName(ctx, "  Cafes  ")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
}

func TestCategoryRepository_FindByName_NotFound(t *testing.T) {
	repo := setupCategoryRepo(t)

	_, err := repo.FindByName(context.Background(), "Nothing")
	require.Error(t, err)
}

func TestCategoryRepository_FindAll_OrderedByCreation(t *testing.T) {
	repo := setupCategoryRepo(t)
	ctx := context.Background()

	first := &Category{Name: "First", Slug: "first"}
	first.CreatedAt = time.Now().Add(-2 * time.Hour)
	first.UpdatedAt = first.CreatedAt
	second := &Category{Name: "Second", Slug: "second"}
	second.CreatedAt = time.Now().Add(-time.Hour)
	second.UpdatedAt = second.CreatedAt
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "First", all[0].Name)
	assert.Equal(t, "Second", all[1].Name)
}
