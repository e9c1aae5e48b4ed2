package cms_routes

import (
	"github.com/Lumera-Commerce/lumera-storefront-backend/controllers/cms/customer_controller"
	"github.com/Lumera-Commerce/lumera-storefront-backend/middleware"
	"github.com/gin-gonic/gin"
)

func SetupCustomerRoutes(rg *gin.RouterGroup) {
	customer := rg.Group("/customers")

	customer.GET("", customer_controller.GetCustomers)
	customer.GET("/stats", customer_controller.GetCustomerStats)
	customer.GET("/:id", customer_controller.GetCustomerByID)
	customer.GET("/:id/orders", customer_controller.GetCustomerOrders)

	protected := customer.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		protected.PATCH("/:id", customer_controller.UpdateCustomer)
	}
}
