package repository

import (
	"context"
	"time"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// StoryRepository defines persistence operations for stories. Stories are
// immutable once created; rows leave the table through the expiry sweep or
// the owner's deletion cascade, never through update.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	// ListActive returns stories whose TTL has not elapsed at now,
	// newest first. authorID narrows the result to one author when
	// non-nil.
	ListActive(ctx context.Context, authorID *uint, now time.Time) ([]models.Story, error)
	// DeleteByOwner removes every story owned by the user, expired or not.
	DeleteByOwner(ctx context.Context, userID uint) error
	// PurgeExpired physically removes stories whose TTL elapsed at or
	// before now, returning the number of rows purged.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository returns a new StoryRepository implementation.
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *storyRepository) ListActive(ctx context.Context, authorID *uint, now time.Time) ([]models.Story, error) {
	var stories []models.Story
	q := r.db.WithContext(ctx).
		Preload("User").
		Where("expires_at > ?", now)
	if authorID != nil {
		q = q.Where("user_id = ?", *authorID)
	}
	// created_at can collide inside one second on SQLite; id breaks the
	// tie so traversal order stays deterministic.
	if err := q.Order("created_at DESC, id DESC").Find(&stories).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return stories, nil
}

func (r *storyRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Story{}).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *storyRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.Story{})
	if res.Error != nil {
		return 0, models.NewStorageError(res.Error)
	}
	return res.RowsAffected, nil
}
