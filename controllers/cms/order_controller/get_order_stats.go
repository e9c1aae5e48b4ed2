package order_controller

import (
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetOrderStats godoc
// @Summary Get order statistics
// @Description Returns counts by status, total revenue and average order value
// @Tags CMS - Orders
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/orders/stats [get]
func GetOrderStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	var (
		totalOrders     int
		pendingOrders   int
		shippedOrders   int
		deliveredOrders int
		cancelledOrders int
		totalRevenue    float64
		averageOrder    float64
	)
	err := config.StoreDB.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'shipped'),
			COUNT(*) FILTER (WHERE status = 'delivered'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(total_amount) FILTER (WHERE status <> 'cancelled'), 0),
			COALESCE(AVG(total_amount) FILTER (WHERE status <> 'cancelled'), 0)
		FROM orders
	`).Scan(&totalOrders, &pendingOrders, &shippedOrders, &deliveredOrders,
		&cancelledOrders, &totalRevenue, &averageOrder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to aggregate order stats"))
		return
	}

	stats := []models.OrderStatsResponseItem{
		{
			TotalOrders:     totalOrders,
			PendingOrders:   pendingOrders,
			ShippedOrders:   shippedOrders,
			DeliveredOrders: deliveredOrders,
			CancelledOrders: cancelledOrders,
			TotalRevenue:    totalRevenue,
			AverageOrder:    averageOrder,
		},
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order stats fetched successfully", stats))
}
