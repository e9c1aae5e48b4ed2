package customer_controller

import (
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetCustomerStats godoc
// @Summary Get customer statistics
// @Description Returns customer counts and average lifetime spend
// @Tags CMS - Customers
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/customers/stats [get]
func GetCustomerStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	var (
		totalCustomers      int
		customersWithOrders int
		newThisMonth        int
		avgLifetimeSpend    float64
	)
	err := config.StoreDB.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(DISTINCT customer_id) FROM orders),
			(SELECT COUNT(*) FROM customers
			 WHERE created_at >= date_trunc('month', now())),
			COALESCE((
				SELECT AVG(spend) FROM (
					SELECT SUM(total_amount) AS spend
					FROM orders
					WHERE status <> 'cancelled'
					GROUP BY customer_id
				) per_customer
			), 0)
	`).Scan(&totalCustomers, &customersWithOrders, &newThisMonth, &avgLifetimeSpend)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to aggregate customer stats"))
		return
	}

	stats := []models.CustomerStatsResponseItem{
		{
			TotalCustomers:      totalCustomers,
			CustomersWithOrders: customersWithOrders,
			NewThisMonth:        newThisMonth,
			AvgLifetimeSpend:    avgLifetimeSpend,
		},
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Customer stats fetched successfully", stats))
}
