package models_test

import (
	"testing"

	"storefront-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headphones() models.CartItem {
	return models.CartItem{ID: "1", Name: "Wireless Headphones", Price: 149.99, Image: "/img/1.jpg"}
}

func TestCart_AddNewItem(t *testing.T) {
	cart := models.NewCart("client-1")

	cart.Add(headphones())

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "1", cart.Items[0].ID)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCart_AddExistingItemIncrementsByOne(t *testing.T) {
	cart := models.NewCart("client-1")
	cart.Add(headphones())

	item := headphones()
	item.Quantity = 5
	cart.Add(item)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCart_AddKeepsInsertionOrder(t *testing.T) {
	cart := models.NewCart("client-1")
	cart.Add(models.CartItem{ID: "b", Price: 1})
	cart.Add(models.CartItem{ID: "a", Price: 1})
	cart.Add(models.CartItem{ID: "b", Price: 1})

	require.Len(t, cart.Items, 2)
	assert.Equal(t, "b", cart.Items[0].ID)
	assert.Equal(t, "a", cart.Items[1].ID)
}

func TestCart_SetQuantity(t *testing.T) {
	cart := models.NewCart("client-1")
	cart.Add(headphones())

	cart.SetQuantity("1", 4)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	cart.SetQuantity("unknown", 3)
	require.Len(t, cart.Items, 1)

	cart.SetQuantity("1", 0)
	assert.Empty(t, cart.Items)
}

func TestCart_SetNegativeQuantityRemoves(t *testing.T) {
	cart := models.NewCart("client-1")
	cart.Add(headphones())

	cart.SetQuantity("1", -2)

	assert.Empty(t, cart.Items)
}

func TestCart_RemoveAndClear(t *testing.T) {
	cart := models.NewCart("client-1")
	cart.Add(models.CartItem{ID: "1", Price: 10})
	cart.Add(models.CartItem{ID: "2", Price: 20})

	cart.Remove("1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "2", cart.Items[0].ID)

	cart.Remove("missing")
	assert.Len(t, cart.Items, 1)

	cart.Clear()
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestCart_Totals(t *testing.T) {
	cart := models.NewCart("client-1")
	cart.Add(models.CartItem{ID: "1", Price: 10})
	cart.Add(models.CartItem{ID: "2", Price: 2.5})
	cart.SetQuantity("1", 3)

	assert.Equal(t, 4, cart.TotalItems())
	assert.InDelta(t, 32.5, cart.Subtotal(), 1e-9)
}

func TestCart_EmptyTotals(t *testing.T) {
	cart := models.NewCart("client-1")

	assert.Equal(t, 0, cart.TotalItems())
	assert.Zero(t, cart.Subtotal())
}

func TestAddToCartRequest_Item(t *testing.T) {
	original := 199.99
	req := models.AddToCartRequest{ID: "1", Name: "Headphones", Price: 149.99, Image: "/img/1.jpg", OriginalPrice: &original}

	item := req.Item()

	assert.Equal(t, "1", item.ID)
	assert.Equal(t, 0, item.Quantity)
	require.NotNil(t, item.OriginalPrice)
	assert.Equal(t, 199.99, *item.OriginalPrice)
}
