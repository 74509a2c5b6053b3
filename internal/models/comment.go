package models

import (
	"time"
)

// Comment is immutable once appended; display order is ID order.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"authorId"`
	Author    string    `gorm:"size:100;not null" json:"author"` // username at comment time
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
