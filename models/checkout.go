package models

import "time"

// CheckoutEvent is published when a client checks out its cart.
type CheckoutEvent struct {
	Event     string     `json:"event"` // e.g. "checkout.requested"
	ClientID  string     `json:"client_id"`
	UserID    string     `json:"user_id,omitempty"`
	Items     []CartItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	Shipping  float64    `json:"shipping"`
	Total     float64    `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}

const CheckoutRequestedEvent = "checkout.requested"
