package repository

import (
	"context"

	"storefront-service/models"
)

// SessionRepository stores the identity of a client's session.
type SessionRepository interface {
	Load(ctx context.Context, clientID string) (*models.User, error)
	Save(ctx context.Context, clientID string, user *models.User) error
	Delete(ctx context.Context, clientID string) error
}

type storageSessionRepository struct {
	storage LocalStorage
}

// NewSessionRepository keeps the session under the "user" key.
func NewSessionRepository(storage LocalStorage) SessionRepository {
	return &storageSessionRepository{storage: storage}
}

// Load returns nil when the client has no session.
func (r *storageSessionRepository) Load(ctx context.Context, clientID string) (*models.User, error) {
	var user models.User
	found, err := getJSON(ctx, r.storage, clientID, UserKey, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *storageSessionRepository) Save(ctx context.Context, clientID string, user *models.User) error {
	return setJSON(ctx, r.storage, clientID, UserKey, user)
}

func (r *storageSessionRepository) Delete(ctx context.Context, clientID string) error {
	return r.storage.RemoveItem(ctx, clientID, UserKey)
}
