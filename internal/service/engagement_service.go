package service

import (
	"context"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"
)

// DefaultPageSize is the page size list endpoints fall back to when the
// client doesn't specify one.
const DefaultPageSize = 20

// EngagementService toggles likes and saved posts. Both are the same
// idempotent set-membership flip over different edge tables.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
	postRepo       repository.PostRepository
	userRepo       repository.UserRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(
	engagementRepo repository.EngagementRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
		userRepo:       userRepo,
	}
}

// ToggleLike flips userID's like on postID. Returns true when the like
// exists after the call. The like count is not recomputed here; readers
// re-derive it from the set.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return false, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}

	liked, err := s.engagementRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	direction := "removed"
	if liked {
		direction = "added"
	}
	observability.ToggleOperations.WithLabelValues("like", direction).Inc()

	return liked, nil
}

// ToggleSavedPost flips postID's membership in userID's saved set. The
// post need not be owned by the acting user. Returns true when the save
// exists after the call.
func (s *EngagementService) ToggleSavedPost(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return false, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}

	saved, err := s.engagementRepo.ToggleSave(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	direction := "removed"
	if saved {
		direction = "added"
	}
	observability.ToggleOperations.WithLabelValues("save", direction).Inc()

	cache.InvalidateSavedPosts(ctx, userID)

	return saved, nil
}

// SavedPosts lists the acting user's saved posts, newest save first.
// Saves pointing at posts that no longer resolve are excluded, not errors.
func (s *EngagementService) SavedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post

	fetch := func() error {
		var fetchErr error
		posts, fetchErr = s.engagementRepo.SavedPosts(ctx, userID, limit, offset)
		return fetchErr
	}

	// Only the default first page is cached; the single per-user key
	// cannot distinguish pagination windows.
	var err error
	if limit == DefaultPageSize && offset == 0 {
		err = cache.Aside(ctx, cache.SavedPostsKey(userID), &posts, cache.SavedPostsTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		if err := s.Enrich(ctx, p, userID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// Enrich fills the post's computed engagement fields for the requesting
// user. A zero currentUserID skips the per-user flags.
func (s *EngagementService) Enrich(ctx context.Context, post *models.Post, currentUserID uint) error {
	count, err := s.engagementRepo.LikeCount(ctx, post.ID)
	if err != nil {
		return err
	}
	post.LikesCount = int(count)

	if currentUserID == 0 {
		return nil
	}
	if post.Liked, err = s.engagementRepo.Liked(ctx, currentUserID, post.ID); err != nil {
		return err
	}
	if post.Saved, err = s.engagementRepo.Saved(ctx, currentUserID, post.ID); err != nil {
		return err
	}
	return nil
}
