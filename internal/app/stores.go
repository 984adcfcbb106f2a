package app

import (
	"context"
	"time"

	"blogilista/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.User, error)
}

type BlogStore interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id uint) (*model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	ListByUserIDs(ctx context.Context, userIDs []uint) ([]model.Blog, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Blog, error)
	Delete(ctx context.Context, id uint) error
}

type EventLog interface {
	ListByBlogID(ctx context.Context, blogID uint, limit int) ([]model.BlogEvent, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.BlogEvent) error
}

type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
