package migration

import (
	"fmt"

	"recipe-catalog/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Migrate creates the recipes schema and the tables owned by this service.
// The recipes table is imported data; AutoMigrate only adds what is missing.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS recipes_tb`).Error; err != nil {
		return fmt.Errorf("create schema recipes_tb: %w", err)
	}

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		return fmt.Errorf("migrate recipes: %w", err)
	}
	if err := db.AutoMigrate(&entities.Bookmark{}); err != nil {
		return fmt.Errorf("migrate bookmarks: %w", err)
	}

	log.Info("database migration complete")
	return nil
}
