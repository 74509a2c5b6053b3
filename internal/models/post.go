package models

import (
	"html/template"
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Pid       string    `gorm:"uniqueIndex;size:36;not null" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"authorId"`
	Author    string    `gorm:"size:100;not null" json:"author"` // username at posting time
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	Comments  []Comment `gorm:"constraint:OnDelete:CASCADE;" json:"comments"`
	Votes     []Vote    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	// Bumped by every vote; clients drop vote events older than what they hold.
	VoteVersion uint64 `gorm:"not null;default:0" json:"voteVersion"`

	// Not stored: filled on every response from the current votes and comments.
	ContentHTML   template.HTML `gorm:"-" json:"contentHtml"`
	CommentCount  int           `gorm:"-" json:"commentCount"`
	UpvoteCount   int           `gorm:"-" json:"upvoteCount"`
	DownvoteCount int           `gorm:"-" json:"downvoteCount"`
	VoteScore     int           `gorm:"-" json:"voteScore"`
	HasUpvoted    bool          `gorm:"-" json:"hasUpvoted"`
	HasDownvoted  bool          `gorm:"-" json:"hasDownvoted"`
}
