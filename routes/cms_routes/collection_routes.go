package cms_routes

import (
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/cms/collection_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/middleware"
	"github.com/gin-gonic/gin"
)

func SetupCollectionRoutes(rg *gin.RouterGroup) {
	collection := rg.Group("/collections")

	collection.GET("", collection_controller.GetCollections)
	collection.GET("/:id", collection_controller.GetCollectionByID)

	protected := collection.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.POST("", collection_controller.CreateCollection)
		protected.PATCH("/:id", collection_controller.UpdateCollection)
		protected.DELETE("/:id", collection_controller.DeleteCollection)

		// Rule engine trigger
		protected.POST("/:id/regenerate", collection_controller.RegenerateCollection)

		// Manual membership
		protected.POST("/:id/products", collection_controller.AddCollectionProduct)
		protected.DELETE("/:id/products/:productId", collection_controller.RemoveCollectionProduct)
	}
}
