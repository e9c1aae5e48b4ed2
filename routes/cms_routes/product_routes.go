package cms_routes

import (
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/cms/inventory_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/cms/product_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/middleware"
	"github.com/gin-gonic/gin"
)

func SetupProductRoutes(rg *gin.RouterGroup) {
	product := rg.Group("/products")

	product.GET("", product_controller.GetProducts)
	product.GET("/stats", product_controller.GetProductStats)
	product.GET("/search", product_controller.SearchProducts)
	product.GET("/:id", product_controller.GetProductByID)
	product.GET("/:id/inventory", inventory_controller.GetProductInventory)

	protected := product.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.POST("", product_controller.CreateProduct)
		protected.PATCH("/:id", product_controller.UpdateProduct)
		protected.DELETE("/:id", product_controller.DeleteProduct)
	}
}
