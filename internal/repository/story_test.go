package repository

import (
	"context"
	"testing"
	"time"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestStory(t *testing.T, db *gorm.DB, owner *models.User, age time.Duration) *models.Story {
	t.Helper()
	createdAt := time.Now().Add(-age)
	story := &models.Story{
		UserID:    owner.ID,
		MediaURL:  "https://example.com/story.jpg",
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(models.StoryTTL),
	}
	if err := db.Create(story).Error; err != nil {
		t.Fatalf("create story: %v", err)
	}
	return story
}

func TestStoryRepository_ListActive(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	fresh := createTestStory(t, db, alice, 1*time.Hour)
	older := createTestStory(t, db, alice, 23*time.Hour)
	createTestStory(t, db, bob, 25*time.Hour) // expired

	stories, err := repo.ListActive(ctx, nil, time.Now())
	require.NoError(t, err)
	require.Len(t, stories, 2)

	// Newest first, with the owner preloaded.
	assert.Equal(t, fresh.ID, stories[0].ID)
	assert.Equal(t, older.ID, stories[1].ID)
	assert.Equal(t, alice.ID, stories[0].User.ID)
}

func TestStoryRepository_ListActive_TTLBoundary(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	story := createTestStory(t, db, alice, 0)

	// One instant before expiry the story is visible.
	justBefore := story.ExpiresAt.Add(-time.Second)
	stories, err := repo.ListActive(ctx, nil, justBefore)
	require.NoError(t, err)
	assert.Len(t, stories, 1)

	// At the expiry instant it is not. Visibility flips here regardless of
	// whether the sweeper has run.
	stories, err = repo.ListActive(ctx, nil, story.ExpiresAt)
	require.NoError(t, err)
	assert.Empty(t, stories)
}

func TestStoryRepository_ListActive_AuthorFilter(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	createTestStory(t, db, alice, time.Hour)
	createTestStory(t, db, alice, 2*time.Hour)
	createTestStory(t, db, bob, time.Hour)

	stories, err := repo.ListActive(ctx, &alice.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, stories, 2)
	for _, st := range stories {
		assert.Equal(t, alice.ID, st.UserID)
	}
}

func TestStoryRepository_PurgeExpired(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	active := createTestStory(t, db, alice, time.Hour)
	createTestStory(t, db, alice, 30*time.Hour)
	createTestStory(t, db, alice, 48*time.Hour)

	purged, err := repo.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	var remaining []models.Story
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, active.ID, remaining[0].ID)

	// Nothing left to purge.
	purged, err = repo.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)
}

func TestStoryRepository_DeleteByOwner(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewStoryRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	createTestStory(t, db, alice, time.Hour)
	createTestStory(t, db, alice, 2*time.Hour)
	kept := createTestStory(t, db, bob, time.Hour)

	require.NoError(t, repo.DeleteByOwner(ctx, alice.ID))

	var remaining []models.Story
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}
