package database

import (
	"project/models"

	"gorm.io/gorm"
)

// AllModels is the full migration set, ordered so referenced tables exist
// before tables that point at them.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Investor{},
		&models.Startup{},
		&models.Offer{},
		&models.OfferAttachment{},
		&models.Investment{},
		&models.StartupMetric{},
		&models.RefreshToken{},
		&models.RevokedToken{},
	}
}

// Migrate runs AutoMigrate for the given models, or the full set when none
// are passed.
func Migrate(db *gorm.DB, targets ...interface{}) error {
	if len(targets) == 0 {
		targets = AllModels()
	}
	return db.AutoMigrate(targets...)
}
