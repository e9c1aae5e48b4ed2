package cms_routes

import (
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/cms/category_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/cms/vendor_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/middleware"
	"github.com/gin-gonic/gin"
)

func SetupCategoryRoutes(rg *gin.RouterGroup) {
	category := rg.Group("/categories")

	category.GET("", category_controller.GetCategories)

	protected := category.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.POST("", category_controller.CreateCategory)
		protected.PATCH("/:id", category_controller.UpdateCategory)
		protected.DELETE("/:id", category_controller.DeleteCategory)
	}
}

func SetupVendorRoutes(rg *gin.RouterGroup) {
	vendor := rg.Group("/vendors")

	vendor.GET("", vendor_controller.GetVendors)

	protected := vendor.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.POST("", vendor_controller.CreateVendor)
		protected.DELETE("/:id", vendor_controller.DeleteVendor)
	}
}
