package postgresadapter

import "gorm.io/gorm"

// Migrate creates or updates this module's tables, the outbox included.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&actionModel{}, &outboxModel{})
}
