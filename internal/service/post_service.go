package service

import (
	"context"

	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// PostService provides post creation, listing and deletion.
type PostService struct {
	postRepo   repository.PostRepository
	engagement *EngagementService
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	UserID   uint
	Caption  string
	ImageURL string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, engagement *EngagementService) *PostService {
	return &PostService{
		postRepo:   postRepo,
		engagement: engagement,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxCaptionLen = 2200

	if in.ImageURL == "" {
		return nil, models.NewValidationError("image_url is required")
	}
	if len(in.Caption) > maxCaptionLen {
		return nil, models.NewValidationError("Caption too long (max 2200 characters)")
	}

	post := &models.Post{
		Caption:  in.Caption,
		ImageURL: in.ImageURL,
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns the post enriched for the requesting user.
func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.engagement.Enrich(ctx, post, currentUserID); err != nil {
		return nil, err
	}
	return post, nil
}

// ListFeed returns the global feed, newest first, enriched for the
// requesting user.
func (s *PostService) ListFeed(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if err := s.engagement.Enrich(ctx, p, currentUserID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// ListByUser returns a user's posts, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if err := s.engagement.Enrich(ctx, p, currentUserID); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// DeletePost removes a post. Only the owner may delete it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}
