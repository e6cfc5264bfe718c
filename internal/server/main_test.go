package server

import (
	"testing"

	"glimpse/internal/config"
	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server against an in-memory database, skipping the
// Prometheus middleware so repeated test runs don't re-register collectors.
func newTestServer(t *testing.T) *Server {
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

	engagement := service.NewEngagementService(engagementRepo, postRepo, userRepo)
	s := &Server{
		config: &config.Config{
			JWTSecret: "test-secret-test-secret-test-secret",
			Port:      "0",
		},
		db:                db,
		userRepo:          userRepo,
		postRepo:          postRepo,
		storyRepo:         storyRepo,
		followRepo:        followRepo,
		engagementRepo:    engagementRepo,
		engagementService: engagement,
		postService:       service.NewPostService(postRepo, engagement),
		storyService:      service.NewStoryService(storyRepo, userRepo),
		graphService:      service.NewGraphService(followRepo, userRepo),
		userService:       service.NewUserService(userRepo, postRepo, storyRepo, followRepo, engagementRepo),
	}
	return s
}

// withUser injects an authenticated user ID the way AuthRequired would.
func withUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func createHandlerTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createHandlerTestPost(t *testing.T, db *gorm.DB, owner *models.User) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:   owner.ID,
		Caption:  "post by " + owner.Username,
		ImageURL: "https://example.com/img.jpg",
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}
