package cms_routes

import (
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/cms/order_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(rg *gin.RouterGroup) {
	order := rg.Group("/orders")

	order.GET("", order_controller.GetOrders)
	order.GET("/stats", order_controller.GetOrderStats)
	order.GET("/search", order_controller.SearchOrders)
	order.GET("/:id", order_controller.GetOrderByID)
	order.GET("/:id/invoice", order_controller.DownloadOrderInvoice)

	protected := order.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.PATCH("/:id/status", order_controller.UpdateOrderStatus)
	}
}
