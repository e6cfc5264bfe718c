package models

import (
	"time"

	"gorm.io/gorm"
)

// StoryTTL is how long a story remains visible after creation.
const StoryTTL = 24 * time.Hour

// Story is an ephemeral media item. Stories are created once, never
// mutated, and disappear when their TTL elapses or their owner is deleted.
// Expired rows are physically purged by the sweeper, but visibility never
// depends on the sweep: ExpiresAt is authoritative on every read path.
type Story struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	MediaURL  string    `gorm:"not null" json:"media_url"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}

// BeforeCreate stamps the expiry from the creation time.
func (s *Story) BeforeCreate(_ *gorm.DB) error {
	if s.ExpiresAt.IsZero() {
		base := s.CreatedAt
		if base.IsZero() {
			base = time.Now()
		}
		s.ExpiresAt = base.Add(StoryTTL)
	}
	return nil
}

// Active reports whether the story is still visible at t.
func (s *Story) Active(t time.Time) bool {
	return t.Before(s.ExpiresAt)
}
