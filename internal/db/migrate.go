package db

import (
	"gorm.io/gorm"

	"cultofdrive/internal/model"
)

// Migrate creates or updates the tables for every model. The hosted database owns the
// production schema; this is for local and test databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Profile{},
		&model.Car{},
		&model.Favorite{},
		&model.Like{},
		&model.Comment{},
		&model.CarView{},
		&model.Notification{},
		&model.MarketplaceListing{},
		&model.Report{},
		&model.Subscriber{},
		&model.SocialPost{},
	)
}
