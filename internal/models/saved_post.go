package models

import "time"

// SavedPost represents a post bookmarked by a user. The saved post need
// not be owned by that user, and the reference may outlive the post
// itself; read paths treat an unresolved post as absent.
type SavedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_save_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_save_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
