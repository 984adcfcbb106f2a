package repository

import (
	"fmt"

	"gorm.io/gorm"

	"blogilista/internal/model"
)

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Blog{}, &model.BlogEvent{}); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return nil
}
