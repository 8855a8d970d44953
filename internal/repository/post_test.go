package repository

import (
	"context"
	"testing"
	"time"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestPost(t *testing.T, db *gorm.DB, user *models.User, text string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID: user.ID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestPostRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Author", "author@example.com")

	post := &models.Post{
		UserID: user.ID,
		Text:   "Hello world",
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	err := repo.Create(ctx, post)
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
}

func TestPostRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Author", "author@example.com")
	post := createTestPost(t, db, user, "Hello world")

	found, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", found.Text)
	assert.Equal(t, user.Name, found.Name)
	assert.Empty(t, found.Likes)
	assert.Empty(t, found.Comments)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 12345)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_List_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Author", "author@example.com")

	older := models.Post{UserID: user.ID, Text: "first", Name: user.Name}
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&older).Error)

	newer := models.Post{UserID: user.ID, Text: "second", Name: user.Name}
	require.NoError(t, db.Create(&newer).Error)

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Text)
	assert.Equal(t, "first", posts[1].Text)
}

func TestPostRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Author", "author@example.com")
	post := createTestPost(t, db, user, "to be removed")

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	require.Error(t, err)
}

func TestPostRepository_Like(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	liker := createTestUser(t, db, "Liker", "liker@example.com")
	post := createTestPost(t, db, author, "like me")

	likes, err := repo.Like(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, liker.ID, likes[0].UserID)
}

func TestPostRepository_Like_Twice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	post := createTestPost(t, db, author, "like me")

	_, err := repo.Like(ctx, post.ID, author.ID)
	require.NoError(t, err)

	_, err = repo.Like(ctx, post.ID, author.ID)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeAlreadyLiked, appErr.Code)

	likes, err := repo.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestPostRepository_Like_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	first := createTestUser(t, db, "First", "first@example.com")
	second := createTestUser(t, db, "Second", "second@example.com")
	post := createTestPost(t, db, author, "popular")

	_, err := repo.Like(ctx, post.ID, first.ID)
	require.NoError(t, err)

	likes, err := repo.Like(ctx, post.ID, second.ID)
	require.NoError(t, err)
	require.Len(t, likes, 2)
	assert.Equal(t, second.ID, likes[0].UserID)
	assert.Equal(t, first.ID, likes[1].UserID)
}

func TestPostRepository_Unlike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	post := createTestPost(t, db, author, "like me")

	_, err := repo.Like(ctx, post.ID, author.ID)
	require.NoError(t, err)

	likes, err := repo.Unlike(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestPostRepository_Unlike_NotLiked(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	post := createTestPost(t, db, author, "never liked")

	_, err := repo.Unlike(ctx, post.ID, author.ID)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotLiked, appErr.Code)
}

func TestPostRepository_GetByID_ServesCachedRead(t *testing.T) {
	db := setupTestDB(t)
	setupTestCache(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	post := createTestPost(t, db, author, "original")

	first, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", first.Text)

	// A write that bypasses the repository is invisible while the cached
	// entry is live.
	require.NoError(t, db.Model(&models.Post{}).
		Where("id = ?", post.ID).
		Update("text", "changed behind the cache").Error)

	cached, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", cached.Text)

	// Any repository write to the post invalidates its cache entry.
	_, err = repo.Like(ctx, post.ID, author.ID)
	require.NoError(t, err)

	fresh, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed behind the cache", fresh.Text)
	assert.Len(t, fresh.Likes, 1)
}

func TestPostRepository_List_CacheInvalidatedOnCreate(t *testing.T) {
	db := setupTestDB(t)
	setupTestCache(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author", "author@example.com")
	createTestPost(t, db, author, "first")

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	// Direct inserts do not touch the cached list.
	createTestPost(t, db, author, "second")
	posts, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	// Creating through the repository drops the cached list.
	err = repo.Create(ctx, &models.Post{
		UserID: author.ID,
		Text:   "third",
		Name:   author.Name,
		Avatar: author.Avatar,
	})
	require.NoError(t, err)

	posts, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}
