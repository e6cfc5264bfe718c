package service

import (
	"context"
	"time"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// StoryService creates stories and aggregates the active-story feed.
type StoryService struct {
	storyRepo repository.StoryRepository
	userRepo  repository.UserRepository
	// now is swappable for TTL boundary tests.
	now func() time.Time
}

// CreateStoryInput carries the fields for a new story.
type CreateStoryInput struct {
	UserID   uint
	MediaURL string
}

// NewStoryService returns a new StoryService.
func NewStoryService(storyRepo repository.StoryRepository, userRepo repository.UserRepository) *StoryService {
	return &StoryService{
		storyRepo: storyRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *StoryService) WithClock(now func() time.Time) *StoryService {
	s.now = now
	return s
}

// CreateStory uploads a story for the user. Expiry is stamped at creation;
// the story is read-only afterwards.
func (s *StoryService) CreateStory(ctx context.Context, in CreateStoryInput) (*models.Story, error) {
	if in.MediaURL == "" {
		return nil, models.NewValidationError("media_url is required")
	}
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	story := &models.Story{
		UserID:   in.UserID,
		MediaURL: in.MediaURL,
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	cache.InvalidateStories(ctx, in.UserID)

	return story, nil
}

// ActiveStories returns the active-story feed: one story per author, the
// first encountered in newest-first traversal (so each author is
// represented by their most recent active story). Stories whose author no
// longer resolves are dropped. When authorID is set the feed is scoped to
// that author and every active story is returned, not just the newest.
// Pure read; safe to re-run. The aggregated result is cached under a short
// TTL so expiry takes effect within a bounded staleness window even when
// no write invalidates the key.
func (s *StoryService) ActiveStories(ctx context.Context, authorID *uint) ([]models.Story, error) {
	var feed []models.Story

	fetch := func() error {
		stories, err := s.storyRepo.ListActive(ctx, authorID, s.now())
		if err != nil {
			return err
		}
		if authorID != nil {
			feed = dropDangling(stories)
		} else {
			feed = dedupByAuthor(stories)
		}
		return nil
	}

	key := cache.StoryFeedKey
	if authorID != nil {
		key = cache.StoryAuthorKey(*authorID)
	}
	if err := cache.Aside(ctx, key, &feed, cache.StoryFeedTTL, fetch); err != nil {
		return nil, err
	}
	return feed, nil
}

// dropDangling removes stories whose author record did not resolve.
func dropDangling(stories []models.Story) []models.Story {
	out := make([]models.Story, 0, len(stories))
	for _, st := range stories {
		if st.User.ID == 0 {
			continue
		}
		out = append(out, st)
	}
	return out
}

// dedupByAuthor retains the first story per author in traversal order.
func dedupByAuthor(stories []models.Story) []models.Story {
	seen := make(map[uint]struct{}, len(stories))
	out := make([]models.Story, 0, len(stories))
	for _, st := range stories {
		if st.User.ID == 0 {
			// dangling owner reference, treat as absent
			continue
		}
		if _, ok := seen[st.UserID]; ok {
			continue
		}
		seen[st.UserID] = struct{}{}
		out = append(out, st)
	}
	return out
}
