package models

import "time"

// Follow is a directed follow edge between two users. A single row backs
// both sides of the relationship: the followee's followers list and the
// follower's following list are views over the same edge, so the two can
// never disagree. The composite unique index makes row insert/delete the
// atomic add/remove-from-set primitive for the graph.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;index;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
