// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the Glimpse application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `json:"name"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`

	// FollowerCount is not persisted; computed at query time
	FollowerCount int `gorm:"-" json:"follower_count"`
	// FollowingCount is not persisted; computed at query time
	FollowingCount int `gorm:"-" json:"following_count"`
	// Followed indicates whether the current requesting user follows this user (computed)
	Followed bool `gorm:"-" json:"followed"`
}
