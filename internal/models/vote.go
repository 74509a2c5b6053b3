package models

import (
	"time"
)

const (
	VoteValueUp   = 1
	VoteValueDown = -1
)

// Vote is a single user's vote on a post. The unique (post_id, user_id) index
// keeps a user out of the up and down sets at the same time.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user;index" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
