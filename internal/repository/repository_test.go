package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogilista/internal/model"
	"blogilista/internal/platform/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "blogilista.db"))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, repo *UserRepository, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Name: username, PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := createUser(t, repo, "Piru666")
	require.NotZero(t, user.ID)

	byName, err := repo.GetByUsername(ctx, "Piru666")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Piru666", byID.Username)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	createUser(t, repo, "Piru666")

	err := repo.Create(ctx, &model.User{Username: "Piru666", PasswordHash: "other"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepositoryListByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	a := createUser(t, repo, "aaa")
	createUser(t, repo, "bbb")
	c := createUser(t, repo, "ccc")

	users, err := repo.ListByIDs(ctx, []uint{a.ID, c.ID})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestBlogRepositoryCreateRequiresOwner(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	blogs := NewBlogRepository(db)
	owner := createUser(t, users, "owner")

	blog := &model.Blog{Title: "Chocochili", URL: "https://chocochili.net/", UserID: owner.ID}
	require.NoError(t, blogs.Create(ctx, blog))
	assert.NotZero(t, blog.ID)
	assert.Equal(t, 0, blog.Likes)

	err := blogs.Create(ctx, &model.Blog{Title: "orphan", URL: "https://x", UserID: 9999})
	assert.ErrorIs(t, err, ErrOwnerNotFound)

	all, err := blogs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBlogRepositoryListByUserIDs(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	blogs := NewBlogRepository(db)
	a := createUser(t, users, "aaa")
	b := createUser(t, users, "bbb")

	for _, uid := range []uint{a.ID, b.ID, a.ID} {
		require.NoError(t, blogs.Create(ctx, &model.Blog{Title: "t", URL: "u", UserID: uid}))
	}

	got, err := blogs.ListByUserIDs(ctx, []uint{a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Less(t, got[0].ID, got[1].ID)
}

func TestBlogRepositoryUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	blogs := NewBlogRepository(db)
	owner := createUser(t, users, "owner")

	blog := &model.Blog{Title: "Jaskan Blogi", URL: "https://jaska.fi", Likes: 5, UserID: owner.ID}
	require.NoError(t, blogs.Create(ctx, blog))

	updated, err := blogs.Update(ctx, blog.ID, map[string]interface{}{"likes": 0, "author": "Jaska"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 0, updated.Likes)
	assert.Equal(t, "Jaska", updated.Author)
	assert.Equal(t, "Jaskan Blogi", updated.Title)

	missing, err := blogs.Update(ctx, 9999, map[string]interface{}{"likes": 1})
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, blogs.Delete(ctx, blog.ID))
	require.NoError(t, blogs.Delete(ctx, blog.ID))

	gone, err := blogs.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestEventRepositoryListByBlogID(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, &model.BlogEvent{Kind: model.BlogEventCreated, BlogID: 1, UserID: 1}))
	require.NoError(t, repo.Create(ctx, &model.BlogEvent{Kind: model.BlogEventUpdated, BlogID: 1, UserID: 1}))
	require.NoError(t, repo.Create(ctx, &model.BlogEvent{Kind: model.BlogEventCreated, BlogID: 2, UserID: 1}))

	events, err := repo.ListByBlogID(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.BlogEventCreated, events[0].Kind)
	assert.Equal(t, model.BlogEventUpdated, events[1].Kind)
}
