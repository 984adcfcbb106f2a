package model

import "time"

const (
	BlogEventCreated = "created"
	BlogEventUpdated = "updated"
	BlogEventDeleted = "deleted"
)

type BlogEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:16;not null;index" json:"kind"`
	BlogID    uint      `gorm:"not null;index" json:"blog_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:255" json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
