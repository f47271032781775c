// File: internal/user/repository_test.go
package user

import (
	"context"
	"fmt"
	"testing"

	"poi_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserRepo(t *testing.T) Repository {
	t.Helper()
	// Named shared in-memory database so every pooled connection sees the
	// same data.
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return NewGORMRepository(db)
}

func TestUserRepository_CreateAndFindByEmail(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	u := &User{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "Grace.Hopper@Example.com",
		PasswordHash: "hash",
		Role:         common.RoleUser,
	}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID, "ID must be assigned application-side")

	// Emails are stored and matched lower-cased.
	found, err := repo.FindByEmail(ctx, "grace.hopper@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "grace.hopper@example.com", found.Email)

	found, err = repo.FindByEmail(ctx, "GRACE.HOPPER@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	first := &User{FirstName: "A", LastName: "A", Email: "dup@example.com", PasswordHash: "h", Role: common.RoleUser}
	require.NoError(t, repo.Create(ctx, first))

	// Same email with different casing still collides.
	second := &User{FirstName: "B", LastName: "B", Email: "DUP@example.com", PasswordHash: "h", Role: common.RoleAdmin}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "DUPLICATE_EMAIL", apiErr.Code)
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	repo := setupUserRepo(t)

	_, err := repo.FindByEmail(context.Background(), "missing@example.com")
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestUserRepository_FindAllByRole(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &User{FirstName: "U1", LastName: "L", Email: "u1@example.com", PasswordHash: "h", Role: common.RoleUser}))
	require.NoError(t, repo.Create(ctx, &User{FirstName: "U2", LastName: "L", Email: "u2@example.com", PasswordHash: "h", Role: common.RoleUser}))
	require.NoError(t, repo.Create(ctx, &User{FirstName: "Adm", LastName: "L", Email: "adm@example.com", PasswordHash: "h", Role: common.RoleAdmin}))

	users, err := repo.FindAllByRole(ctx, common.RoleUser, 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Equal(t, common.RoleUser, u.Role)
	}

	admins, err := repo.FindAllByRole(ctx, common.RoleAdmin, 0, 10)
	require.NoError(t, err)
	require.Len(t, admins, 1)

	total, err := repo.CountByRole(ctx, common.RoleUser)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// Paging slices the ordered listing.
	firstPage, err := repo.FindAllByRole(ctx, common.RoleUser, 0, 1)
	require.NoError(t, err)
	require.Len(t, firstPage, 1)
	secondPage, err := repo.FindAllByRole(ctx, common.RoleUser, 1, 1)
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
	assert.NotEqual(t, firstPage[0].ID, secondPage[0].ID)
}

func TestUserRepository_Delete_Idempotent(t *testing.T) {
	repo := setupUserRepo(t)
	ctx := context.Background()

	u := &User{FirstName: "Del", LastName: "Me", Email: "del@example.com", PasswordHash: "h", Role: common.RoleUser}
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err := repo.FindByID(ctx, u.ID)
	require.Error(t, err)

	// Deleting again succeeds without complaint.
	require.NoError(t, repo.Delete(ctx, u.ID))
	require.NoError(t, repo.Delete(ctx, uuid.New()))
}
