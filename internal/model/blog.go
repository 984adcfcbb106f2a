package model

import "time"

// Blog belongs to exactly one user; the owner's blog list is every row
// carrying that user's ID.
type Blog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Author    string    `gorm:"size:128;index" json:"author"`
	URL       string    `gorm:"size:1024;not null" json:"url"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
