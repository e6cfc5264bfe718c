package server

import (
	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateStory handles POST /api/stories.  Stories expire 24 hours after
// creation; the expiry is stamped server-side.
func (s *Server) CreateStory(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		MediaURL string `json:"media_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	story, err := s.storyService.CreateStory(c.UserContext(), service.CreateStoryInput{
		UserID:   userID,
		MediaURL: req.MediaURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(story)
}

// GetStories handles GET /api/stories.  Without a filter it returns the
// active-story feed with one story per author; with ?author=<id> it
// returns all active stories from that author.
func (s *Server) GetStories(c *fiber.Ctx) error {
	var authorID *uint
	if author := c.QueryInt("author", 0); author > 0 {
		id := uint(author)
		authorID = &id
	} else if c.Query("author") != "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid author ID"))
	}

	stories, err := s.storyService.ActiveStories(c.UserContext(), authorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(stories)
}
