package postgresadapter

import "gorm.io/gorm"

// Migrate creates or updates this module's tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&elementModel{})
}
