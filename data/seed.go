package data

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"storefront-service/models"
)

//go:embed products.json
var productsJSON []byte

// Products returns the catalog fixture the storefront starts with.
func Products() ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("invalid product fixture: %w", err)
	}
	return products, nil
}
