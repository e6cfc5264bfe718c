package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is an image post owned by exactly one user. The owner is immutable
// after creation.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Caption  string `json:"caption"`
	ImageURL string `gorm:"not null" json:"image_url"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"-" json:"liked"`
	// Saved indicates whether the current requesting user saved this post (computed)
	Saved     bool           `gorm:"-" json:"saved"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
