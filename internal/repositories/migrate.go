package repositories

import (
	"github.com/anonto42/warbler/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables, unique indexes and cascading foreign keys.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	); err != nil {
		return errors.Wrap(err, "auto migration failed")
	}
	return nil
}
