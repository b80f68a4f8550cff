package repository

import (
	"context"

	"storefront-service/models"
)

// ProductOverrideRepository stores the admin-edited product list. It lives
// in the global scope so every client sees the same catalog.
type ProductOverrideRepository interface {
	// Load returns found=false when no admin edit has happened yet.
	Load(ctx context.Context) (products []models.Product, found bool, err error)
	Save(ctx context.Context, products []models.Product) error
}

type storageProductRepository struct {
	storage LocalStorage
}

// NewProductOverrideRepository keeps the list under the "adminProducts" key.
func NewProductOverrideRepository(storage LocalStorage) ProductOverrideRepository {
	return &storageProductRepository{storage: storage}
}

func (r *storageProductRepository) Load(ctx context.Context) ([]models.Product, bool, error) {
	var products []models.Product
	found, err := getJSON(ctx, r.storage, GlobalScope, AdminProductsKey, &products)
	if err != nil || !found {
		return nil, false, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, true, nil
}

func (r *storageProductRepository) Save(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	return setJSON(ctx, r.storage, GlobalScope, AdminProductsKey, products)
}
