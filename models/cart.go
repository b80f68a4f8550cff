package models

import "time"

// CartItem is one line of a cart.
type CartItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	Image         string   `json:"image"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
}

// Cart is the ordered set of line items owned by one client.
type Cart struct {
	ClientID  string     `json:"client_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart returns an empty cart for clientID.
func NewCart(clientID string) *Cart {
	return &Cart{ClientID: clientID, Items: []CartItem{}}
}

// Add increments the quantity of an existing line by one or appends item
// as a new line with quantity one.
func (c *Cart) Add(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// SetQuantity sets the quantity of the line with the given id. A quantity of
// zero or less removes the line. Unknown ids are ignored.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line with the given id.
func (c *Cart) Remove(id string) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	c.Items = items
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// TotalItems is the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of price times quantity across all lines.
func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

// AddToCartRequest is the payload for POST /api/cart/items.
type AddToCartRequest struct {
	ID            string   `json:"id" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Price         float64  `json:"price" binding:"gte=0"`
	Image         string   `json:"image"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" binding:"omitempty,gte=0"`
}

// Item converts the request into a cart line.
func (r AddToCartRequest) Item() CartItem {
	return CartItem{
		ID:            r.ID,
		Name:          r.Name,
		Price:         r.Price,
		Image:         r.Image,
		OriginalPrice: r.OriginalPrice,
	}
}

// UpdateQuantityRequest is the payload for PUT /api/cart/items/:product_id.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartSummary holds the derived totals shown at checkout.
type CartSummary struct {
	TotalItems int     `json:"total_items"`
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Total      float64 `json:"total"`
}
