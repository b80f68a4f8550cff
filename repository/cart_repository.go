package repository

import (
	"context"
	"time"

	"storefront-service/models"
)

// CartRepository stores the cart of a client.
type CartRepository interface {
	GetCart(ctx context.Context, clientID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, clientID string) error
}

type storageCartRepository struct {
	storage LocalStorage
}

// NewCartRepository keeps the cart under the "cart" key.
func NewCartRepository(storage LocalStorage) CartRepository {
	return &storageCartRepository{storage: storage}
}

// GetCart returns nil when the client has no cart.
func (r *storageCartRepository) GetCart(ctx context.Context, clientID string) (*models.Cart, error) {
	var cart models.Cart
	found, err := getJSON(ctx, r.storage, clientID, CartKey, &cart)
	if err != nil || !found {
		return nil, err
	}
	cart.ClientID = clientID
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

func (r *storageCartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	return setJSON(ctx, r.storage, cart.ClientID, CartKey, cart)
}

func (r *storageCartRepository) DeleteCart(ctx context.Context, clientID string) error {
	return r.storage.RemoveItem(ctx, clientID, CartKey)
}
