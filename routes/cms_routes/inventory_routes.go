package cms_routes

import (
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/cms/checkout_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/cms/inventory_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/middleware"
	"github.com/gin-gonic/gin"
)

func SetupInventoryRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")

	inventory.GET("/low-stock", inventory_controller.GetLowStock)

	protected := inventory.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.POST("/:variantId/adjust", inventory_controller.AdjustInventory)
	}
}

func SetupCheckoutRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkouts")
	checkout.Use(middleware.AdminAuthMiddleware())
	{
		checkout.GET("/abandoned", checkout_controller.GetAbandonedCheckouts)
		checkout.GET("/funnel", checkout_controller.GetCheckoutFunnel)
	}
}
