// Package service contains the business logic of the application.
package service

import (
	"context"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"
)

// GraphService maintains the follow graph between users.
type GraphService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewGraphService returns a new GraphService.
func NewGraphService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *GraphService {
	return &GraphService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// ToggleFollow flips the follow edge from followerID to targetID: unfollow
// if the edge exists, follow otherwise. The operation is its own inverse;
// callers express no direction, only the current membership decides.
// Returns true when the follow exists after the call.
func (s *GraphService) ToggleFollow(ctx context.Context, followerID, targetID uint) (bool, error) {
	if followerID == targetID {
		return false, models.NewInvalidOperationError("Cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, followerID); err != nil {
		return false, err
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	followed, err := s.followRepo.ToggleEdge(ctx, followerID, targetID)
	if err != nil {
		return false, err
	}

	direction := "unfollowed"
	if followed {
		direction = "followed"
	}
	observability.ToggleOperations.WithLabelValues("follow", direction).Inc()

	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, targetID)

	return followed, nil
}

// IsFollowing reports whether followerID currently follows targetID.
func (s *GraphService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, targetID)
}

// Followers returns the users following userID.
func (s *GraphService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

// Following returns the users userID follows.
func (s *GraphService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}
