package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"blogilista/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.BlogEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create blog event failed: %w", err)
	}
	return nil
}

func (r *EventRepository) ListByBlogID(ctx context.Context, blogID uint, limit int) ([]model.BlogEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var events []model.BlogEvent
	if err := r.db.WithContext(ctx).Where("blog_id = ?", blogID).Order("id ASC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list blog events failed: %w", err)
	}
	return events, nil
}
