package models

import (
	"time"
)

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"size:100;not null" json:"username"` // display name, may change
	Email     string     `gorm:"uniqueIndex;size:255;not null" json:"email"` // stored lower-cased
	Phone     string     `gorm:"size:40;not null" json:"phone"`
	Password  string     `gorm:"not null" json:"-"` // bcrypt hash
	Avatar    string     `gorm:"default:🌱" json:"avatar"`
	Favorites []Favorite `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Favorite is one entry of a user's set of favorite plants.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_plant" json:"-"`
	PlantName string    `gorm:"size:200;not null;uniqueIndex:idx_user_plant" json:"plantName"`
	CreatedAt time.Time `json:"createdAt"`
}
