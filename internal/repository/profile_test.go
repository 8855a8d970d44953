package repository

import (
	"context"
	"testing"
	"time"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_Upsert_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Dev", "dev@example.com")

	profile, err := repo.Upsert(ctx, &models.Profile{
		UserID: user.ID,
		Status: "Senior Developer",
		Skills: []string{"Go", "PostgreSQL"},
		Social: models.SocialLinks{Twitter: "https://twitter.com/dev"},
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "Senior Developer", profile.Status)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, profile.Skills)
	assert.Equal(t, "https://twitter.com/dev", profile.Social.Twitter)
	assert.Equal(t, user.Name, profile.User.Name)
}

func TestProfileRepository_Upsert_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Dev", "dev@example.com")

	created, err := repo.Upsert(ctx, &models.Profile{
		UserID:  user.ID,
		Status:  "Junior Developer",
		Skills:  []string{"Go"},
		Company: "Acme",
	})
	require.NoError(t, err)

	_, err = repo.AddExperience(ctx, user.ID, &models.Experience{
		Title:   "Engineer",
		Company: "Acme",
		From:    time.Now().Add(-24 * time.Hour),
		Current: true,
	})
	require.NoError(t, err)

	updated, err := repo.Upsert(ctx, &models.Profile{
		UserID: user.ID,
		Status: "Senior Developer",
		Skills: []string{"Go", "Redis"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Equal(t, []string{"Go", "Redis"}, updated.Skills)
	// updates touch scalar fields only
	assert.Len(t, updated.Experience, 1)
}

func TestProfileRepository_GetByUserID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	_, err := repo.GetByUserID(ctx, 42)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestProfileRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	_, err := repo.Upsert(ctx, &models.Profile{UserID: alice.ID, Status: "Developer"})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, &models.Profile{UserID: bob.ID, Status: "Designer"})
	require.NoError(t, err)

	profiles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	for _, p := range profiles {
		assert.NotZero(t, p.User.ID)
	}
}

func TestProfileRepository_Experience(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Dev", "dev@example.com")
	_, err := repo.Upsert(ctx, &models.Profile{UserID: user.ID, Status: "Developer"})
	require.NoError(t, err)

	profile, err := repo.AddExperience(ctx, user.ID, &models.Experience{
		Title:   "Engineer",
		Company: "Acme",
		From:    time.Now().Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, profile.Experience, 1)

	profile, err = repo.AddExperience(ctx, user.ID, &models.Experience{
		Title:   "Staff Engineer",
		Company: "Globex",
		From:    time.Now().Add(-time.Hour),
		Current: true,
	})
	require.NoError(t, err)
	require.Len(t, profile.Experience, 2)
	// newest role first
	assert.Equal(t, "Staff Engineer", profile.Experience[0].Title)

	profile, err = repo.DeleteExperience(ctx, user.ID, profile.Experience[0].ID)
	require.NoError(t, err)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Engineer", profile.Experience[0].Title)
}

func TestProfileRepository_DeleteExperience_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Dev", "dev@example.com")
	_, err := repo.Upsert(ctx, &models.Profile{UserID: user.ID, Status: "Developer"})
	require.NoError(t, err)

	_, err = repo.DeleteExperience(ctx, user.ID, 999)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestProfileRepository_Education(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Dev", "dev@example.com")
	_, err := repo.Upsert(ctx, &models.Profile{UserID: user.ID, Status: "Developer"})
	require.NoError(t, err)

	profile, err := repo.AddEducation(ctx, user.ID, &models.Education{
		School:       "State University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         time.Now().Add(-365 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)

	profile, err = repo.DeleteEducation(ctx, user.ID, profile.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Education)
}

func TestProfileRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Dev", "dev@example.com")
	_, err := repo.Upsert(ctx, &models.Profile{UserID: user.ID, Status: "Developer"})
	require.NoError(t, err)
	_, err = repo.AddExperience(ctx, user.ID, &models.Experience{
		Title: "Engineer", Company: "Acme", From: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err = repo.GetByUserID(ctx, user.ID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Experience{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProfileRepository_GetByUserID_ServesCachedRead(t *testing.T) {
	db := setupTestDB(t)
	setupTestCache(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "Dev", "dev@example.com")

	_, err := repo.Upsert(ctx, &models.Profile{
		UserID: user.ID,
		Status: "Junior Developer",
	})
	require.NoError(t, err)

	// Upsert re-reads through the cache, so the entry is warm; a write that
	// bypasses the repository stays invisible.
	require.NoError(t, db.Model(&models.Profile{}).
		Where("user_id = ?", user.ID).
		Update("status", "changed behind the cache").Error)

	cached, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Junior Developer", cached.Status)

	// A repository write invalidates the entry and the next read is fresh.
	_, err = repo.Upsert(ctx, &models.Profile{
		UserID: user.ID,
		Status: "Senior Developer",
	})
	require.NoError(t, err)

	fresh, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Developer", fresh.Status)
}

func TestProfileRepository_List_CacheInvalidatedOnUpsert(t *testing.T) {
	db := setupTestDB(t)
	setupTestCache(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	_, err := repo.Upsert(ctx, &models.Profile{UserID: alice.ID, Status: "Developer"})
	require.NoError(t, err)

	profiles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	_, err = repo.Upsert(ctx, &models.Profile{UserID: bob.ID, Status: "Developer"})
	require.NoError(t, err)

	profiles, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestProfileRepository_List_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	first, err := repo.Upsert(ctx, &models.Profile{UserID: alice.ID, Status: "Developer"})
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, &models.Profile{UserID: bob.ID, Status: "Developer"})
	require.NoError(t, err)

	// Identical timestamps; the id is the tiebreak.
	sameInstant := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Profile{}).
		Where("id IN ?", []uint{first.ID, second.ID}).
		Update("created_at", sameInstant).Error)

	profiles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, second.ID, profiles[0].ID)
	assert.Equal(t, first.ID, profiles[1].ID)
}
