package service

import (
	"context"
	"log/slog"

	"glimpse/internal/cache"
	"glimpse/internal/middleware"
	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UserService provides profile management and the user deletion cascade.
type UserService struct {
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	storyRepo      repository.StoryRepository
	followRepo     repository.FollowRepository
	engagementRepo repository.EngagementRepository
}

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	UserID   uint
	Name     string
	Username string
	Bio      string
	Avatar   string
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	storyRepo repository.StoryRepository,
	followRepo repository.FollowRepository,
	engagementRepo repository.EngagementRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		postRepo:       postRepo,
		storyRepo:      storyRepo,
		followRepo:     followRepo,
		engagementRepo: engagementRepo,
	}
}

// ListUsers returns a page of users.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// GetProfile returns the user with follower/following counts and, when
// currentUserID is non-zero, whether the requester follows them.
func (s *UserService) GetProfile(ctx context.Context, id, currentUserID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	followers, following, err := s.followRepo.Counts(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FollowerCount = int(followers)
	user.FollowingCount = int(following)

	if currentUserID != 0 && currentUserID != id {
		if user.Followed, err = s.followRepo.Exists(ctx, currentUserID, id); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// UpdateProfile applies the non-empty fields to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxUsernameLen = 30

	if in.Username != "" {
		if len(in.Username) > maxUsernameLen {
			return nil, models.NewValidationError("Username too long (max 30 characters)")
		}
		user.Username = in.Username
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes the user and everything they own. Content and graph
// edges go before the identity record so a crash mid-sequence cannot leave
// content with a dangling owner; a partially-cleaned user is simply a user
// with nothing left, and re-invoking converges to the same end state.
// Likes the user placed on other posts are left behind as tolerated
// phantom references. Deleting an unknown or already-deleted user is not
// an error.
func (s *UserService) DeleteUser(ctx context.Context, userID uint) (err error) {
	span, ctx := observability.NewSpan(ctx, "user.delete_cascade",
		trace.WithAttributes(attribute.Int64("user.id", int64(userID))))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if err = s.postRepo.DeleteByOwner(ctx, userID); err != nil {
		return err
	}
	if err = s.storyRepo.DeleteByOwner(ctx, userID); err != nil {
		return err
	}
	if err = s.followRepo.RemoveAllEdges(ctx, userID); err != nil {
		return err
	}
	if err = s.engagementRepo.DeleteSavesByUser(ctx, userID); err != nil {
		return err
	}
	// Identity record last.
	if err = s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	observability.CascadeDeletions.Inc()
	cache.InvalidateUser(ctx, userID)
	cache.InvalidateStories(ctx, userID)
	cache.InvalidateSavedPosts(ctx, userID)

	middleware.Logger.InfoContext(ctx, "user deletion cascade completed",
		slog.Uint64("user_id", uint64(userID)),
	)
	return nil
}
