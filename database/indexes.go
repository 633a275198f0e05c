package database

import (
	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/gorm"
)

// EnsureIndexes verifies the schema pieces the notification engine relies on
// beyond what AutoMigrate creates from struct tags. The dedup unique index on
// notifications.dedup_key is the store-level guarantee that at most one active
// daily reminder exists per (recipient, course, date).
func EnsureIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	if !migrator.HasIndex(&models.Notification{}, "DedupKey") {
		if err := migrator.CreateIndex(&models.Notification{}, "DedupKey"); err != nil {
			utils.ErrorLogger.Printf("Error creating dedup index: %v", err)
			return err
		}
	}
	utils.InfoLogger.Printf("Notification dedup index verified")

	// Query-path indexes for the recipient inbox listing.
	for _, column := range []string{"RecipientID", "IsActive", "IsRead"} {
		if !migrator.HasIndex(&models.Notification{}, column) {
			if err := migrator.CreateIndex(&models.Notification{}, column); err != nil {
				utils.ErrorLogger.Printf("Error creating index on %s: %v", column, err)
				return err
			}
		}
	}

	return nil
}
