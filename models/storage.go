package models

import (
	"time"

	"gorm.io/gorm"
)

// StorageEntry is one local-storage item persisted in Postgres.
type StorageEntry struct {
	ClientID  string    `gorm:"primaryKey;type:varchar(128)"`
	Key       string    `gorm:"primaryKey;column:item_key;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Migrate function for auto migration
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&StorageEntry{})
}
