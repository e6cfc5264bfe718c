package service

import (
	"testing"
	"time"

	"glimpse/internal/models"
	"glimpse/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv bundles a fresh in-memory database with all services wired the
// same way the server wires them.
type testEnv struct {
	db         *gorm.DB
	users      *UserService
	graph      *GraphService
	engagement *EngagementService
	posts      *PostService
	stories    *StoryService
	sweeper    *StorySweeper
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Story{},
		&models.Follow{},
		&models.Like{},
		&models.SavedPost{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	followRepo := repository.NewFollowRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)

	engagement := NewEngagementService(engagementRepo, postRepo, userRepo)
	return &testEnv{
		db:         db,
		users:      NewUserService(userRepo, postRepo, storyRepo, followRepo, engagementRepo),
		graph:      NewGraphService(followRepo, userRepo),
		engagement: engagement,
		posts:      NewPostService(postRepo, engagement),
		stories:    NewStoryService(storyRepo, userRepo),
		sweeper:    NewStorySweeper(storyRepo, "@hourly"),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) createPost(t *testing.T, owner *models.User) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:   owner.ID,
		Caption:  "post by " + owner.Username,
		ImageURL: "https://example.com/img.jpg",
	}
	if err := e.db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func (e *testEnv) createStory(t *testing.T, owner *models.User, age time.Duration) *models.Story {
	t.Helper()
	createdAt := time.Now().Add(-age)
	story := &models.Story{
		UserID:    owner.ID,
		MediaURL:  "https://example.com/story.jpg",
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(models.StoryTTL),
	}
	if err := e.db.Create(story).Error; err != nil {
		t.Fatalf("create story: %v", err)
	}
	return story
}
