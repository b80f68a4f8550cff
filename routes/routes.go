package routes

import (
	"storefront-service/controllers"
	"storefront-service/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Controllers groups the handlers RegisterRoutes mounts.
type Controllers struct {
	Session *controllers.SessionController
	Cart    *controllers.CartController
	Product *controllers.ProductController
}

// RegisterRoutes sets up the session, cart and catalog routes under /api.
// Every /api route is scoped to the client resolved by ClientMiddleware.
func RegisterRoutes(r *gin.Engine, ctrl Controllers, admin middleware.AdminChecker, secureCookie bool, logger *zap.Logger) {
	api := r.Group("/api")
	api.Use(middleware.ClientMiddleware(secureCookie))

	session := api.Group("/session")
	session.GET("", ctrl.Session.GetSession)
	session.PATCH("", ctrl.Session.UpdateUser)
	session.GET("/admin", ctrl.Session.IsAdmin)
	session.POST("/login", ctrl.Session.Login)
	session.POST("/register", ctrl.Session.Register)
	session.POST("/logout", ctrl.Session.Logout)

	cart := api.Group("/cart")
	cart.GET("", ctrl.Cart.GetCart)
	cart.DELETE("", ctrl.Cart.ClearCart)
	cart.GET("/summary", ctrl.Cart.GetSummary)
	cart.POST("/items", ctrl.Cart.AddItem)
	cart.PUT("/items/:product_id", ctrl.Cart.UpdateQuantity)
	cart.DELETE("/items/:product_id", ctrl.Cart.RemoveItem)
	cart.POST("/checkout", ctrl.Cart.Checkout)

	products := api.Group("/products")
	products.GET("", ctrl.Product.ListProducts)
	products.GET("/categories", ctrl.Product.ListCategories)
	products.GET("/:id", ctrl.Product.GetProduct)

	// Admin-only routes
	adminRoutes := api.Group("/admin/products")
	adminRoutes.Use(middleware.AdminOnly(admin, logger))
	adminRoutes.POST("", ctrl.Product.CreateProduct)
	adminRoutes.POST("/uploads", ctrl.Product.PresignImageUpload)
	adminRoutes.PUT("/:id", ctrl.Product.UpdateProduct)
	adminRoutes.DELETE("/:id", ctrl.Product.DeleteProduct)
}
