package repository

import (
	"context"
	"errors"
	"time"

	"storefront-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorage implements LocalStorage on a SQL table through GORM.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage creates a new GormStorage.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (r *GormStorage) GetItem(ctx context.Context, clientID, key string) (string, bool, error) {
	var entry models.StorageEntry
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND item_key = ?", clientID, key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// SetItem upserts the entry.
func (r *GormStorage) SetItem(ctx context.Context, clientID, key, value string) error {
	entry := models.StorageEntry{
		ClientID:  clientID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "item_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (r *GormStorage) RemoveItem(ctx context.Context, clientID, key string) error {
	return r.db.WithContext(ctx).
		Where("client_id = ? AND item_key = ?", clientID, key).
		Delete(&models.StorageEntry{}).Error
}
