package controllers

import (
	"net/http"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// CartController handles HTTP requests for the client's cart.
type CartController struct {
	cartService    services.CartService
	sessionService services.SessionService
}

// NewCartController creates a new CartController.
func NewCartController(cartService services.CartService, sessionService services.SessionService) *CartController {
	return &CartController{
		cartService:    cartService,
		sessionService: sessionService,
	}
}

// GetCart handles GET /api/cart.
func (cc *CartController) GetCart(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	cart, err := cc.cartService.GetCart(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// GetSummary handles GET /api/cart/summary.
func (cc *CartController) GetSummary(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	summary, err := cc.cartService.Summary(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// AddItem handles POST /api/cart/items.
func (cc *CartController) AddItem(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cart, err := cc.cartService.AddToCart(c.Request.Context(), id, req.Item())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// UpdateQuantity handles PUT /api/cart/items/:product_id.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cart, err := cc.cartService.UpdateQuantity(c.Request.Context(), id, c.Param("product_id"), *req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/:product_id.
func (cc *CartController) RemoveItem(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	cart, err := cc.cartService.RemoveFromCart(c.Request.Context(), id, c.Param("product_id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart handles DELETE /api/cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	if err := cc.cartService.ClearCart(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// Checkout handles POST /api/cart/checkout. Guests may check out; the user
// id is attached when a session exists.
func (cc *CartController) Checkout(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}

	var userID string
	if user, err := cc.sessionService.Current(c.Request.Context(), id); err == nil && user != nil {
		userID = user.ID
	}

	event, err := cc.cartService.Checkout(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "checkout initiated", "checkout": event})
}
