package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogilista/internal/model"
)

var ErrOwnerNotFound = errors.New("blog owner not found")

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// Create inserts the blog in the same transaction that confirms its owner
// still exists, so a blog never points at a missing user.
func (r *BlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner model.User
		if err := tx.Select("id").First(&owner, blog.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOwnerNotFound
			}
			return fmt.Errorf("query blog owner failed: %w", err)
		}
		if err := tx.Create(blog).Error; err != nil {
			return fmt.Errorf("create blog failed: %w", err)
		}
		return nil
	})
}

func (r *BlogRepository) GetByID(ctx context.Context, id uint) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query blog by id failed: %w", err)
	}
	return &blog, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]model.Blog, error) {
	var blogs []model.Blog
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("list blogs failed: %w", err)
	}
	return blogs, nil
}

func (r *BlogRepository) ListByUserIDs(ctx context.Context, userIDs []uint) ([]model.Blog, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var blogs []model.Blog
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Order("id ASC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("list blogs by user ids failed: %w", err)
	}
	return blogs, nil
}

// Update applies the given column values and returns the stored row, or nil
// when no blog has that ID.
func (r *BlogRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Blog, error) {
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.Blog{ID: id}).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("update blog failed: %w", err)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *BlogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Blog{}, id).Error; err != nil {
		return fmt.Errorf("delete blog failed: %w", err)
	}
	return nil
}
