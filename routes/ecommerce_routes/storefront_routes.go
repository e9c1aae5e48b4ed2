package ecommerce_routes

import (
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/ecommerce/cart_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/ecommerce/checkout_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/ecommerce/collection_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/ecommerce/filter_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/ecommerce/order_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/ecommerce/product_controller"
	"github.com/gin-gonic/gin"
)

func SetupStorefrontRoutes(rg *gin.RouterGroup) {
	store := rg.Group("/store")

	// Catalog
	store.GET("/products", product_controller.GetStorefrontProducts)
	store.GET("/products/:slug", product_controller.GetStorefrontProductBySlug)
	store.GET("/collections", collection_controller.GetStorefrontCollections)
	store.GET("/collections/:slug", collection_controller.GetStorefrontCollectionBySlug)
	store.GET("/filters/metadata", filter_controller.GetFilterMetadata)

	// Cart
	store.GET("/cart/:token", cart_controller.GetCart)
	store.POST("/cart/:token/items", cart_controller.AddCartItem)
	store.PATCH("/cart/:token/items/:itemId", cart_controller.UpdateCartItem)
	store.DELETE("/cart/:token/items/:itemId", cart_controller.RemoveCartItem)
	store.DELETE("/cart/:token/items", cart_controller.ClearCart)

	// Checkout
	store.POST("/checkout", checkout_controller.StartCheckout)
	store.PATCH("/checkout/:id", checkout_controller.UpdateCheckout)
	store.POST("/checkout/:id/complete", checkout_controller.CompleteCheckout)
	store.GET("/checkout/recover/:token", checkout_controller.RecoverCheckout)

	// Orders
	store.GET("/orders", order_controller.GetStorefrontOrders)
	store.GET("/orders/:number", order_controller.GetStorefrontOrderByNumber)
}
