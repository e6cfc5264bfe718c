package repository

import (
	"context"

	"glimpse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository defines persistence operations for membership sets
// hanging off posts and users: likes and saved posts. Both share one toggle
// primitive over a uniquely-indexed edge row, which makes each add/remove
// atomic against the current persisted state instead of a read-modify-write
// of a containing document.
type EngagementRepository interface {
	// ToggleLike flips userID's membership in the post's like set.
	// Returns true when the like exists after the call.
	ToggleLike(ctx context.Context, userID, postID uint) (bool, error)
	// ToggleSave flips postID's membership in the user's saved set.
	// Returns true when the save exists after the call.
	ToggleSave(ctx context.Context, userID, postID uint) (bool, error)
	LikeCount(ctx context.Context, postID uint) (int64, error)
	Liked(ctx context.Context, userID, postID uint) (bool, error)
	Saved(ctx context.Context, userID, postID uint) (bool, error)
	// SavedPosts lists the user's saved posts, newest save first. Saves
	// whose post no longer resolves are silently excluded.
	SavedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	// DeleteSavesByUser removes all of the user's saved-post rows.
	DeleteSavesByUser(ctx context.Context, userID uint) error
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository returns a new EngagementRepository implementation.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// toggleRow is the shared toggle primitive: delete the row matching cond;
// if nothing was deleted, insert fresh. The composite unique index on the
// edge table guarantees no duplicates even when two inserts race, and
// distinct pairs never contend with each other.
func (r *engagementRepository) toggleRow(ctx context.Context, cond string, args []any, model any, fresh any) (bool, error) {
	res := r.db.WithContext(ctx).Where(cond, args...).Delete(model)
	if res.Error != nil {
		return false, models.NewStorageError(res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fresh).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	return true, nil
}

func (r *engagementRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return r.toggleRow(ctx,
		"user_id = ? AND post_id = ?", []any{userID, postID},
		&models.Like{},
		&models.Like{UserID: userID, PostID: postID},
	)
}

func (r *engagementRepository) ToggleSave(ctx context.Context, userID, postID uint) (bool, error) {
	return r.toggleRow(ctx,
		"user_id = ? AND post_id = ?", []any{userID, postID},
		&models.SavedPost{},
		&models.SavedPost{UserID: userID, PostID: postID},
	)
}

func (r *engagementRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}

func (r *engagementRepository) Liked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) Saved(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) SavedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	// Inner join drops saves whose post has been deleted; those rows are
	// tolerated phantoms, not errors.
	if err := r.db.WithContext(ctx).
		Table("posts").
		Joins("JOIN saved_posts sp ON sp.post_id = posts.id").
		Where("sp.user_id = ? AND posts.deleted_at IS NULL", userID).
		Order("sp.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

func (r *engagementRepository) DeleteSavesByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.SavedPost{}).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}
