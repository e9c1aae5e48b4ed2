package customer_controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCustomerByID godoc
// @Summary Get a single customer
// @Description Retrieve a customer with aggregate spend and order history stats
// @Tags CMS - Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/customers/{id} [get]
func GetCustomerByID(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid customer ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var customer models.Customer
	if err := config.StoreGorm.WithContext(ctx).
		Preload("Addresses").
		First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Customer not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch customer"))
		return
	}

	var (
		orderCount    int
		totalSpent    float64
		lastOrderDate *time.Time
	)
	if err := config.StoreDB.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0), MAX(created_at)
		FROM orders
		WHERE customer_id = $1 AND status <> 'cancelled'
	`, customerID).Scan(&orderCount, &totalSpent, &lastOrderDate); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to aggregate customer orders"))
		return
	}

	avgOrderValue := 0.0
	if orderCount > 0 {
		avgOrderValue = totalSpent / float64(orderCount)
	}

	detail := models.CustomerDetail{
		ID:            customer.ID,
		Name:          customer.Name,
		Email:         customer.Email,
		Phone:         customer.Phone,
		Orders:        orderCount,
		TotalSpent:    totalSpent,
		AvgOrderValue: avgOrderValue,
		LastOrderDate: lastOrderDate,
		JoinDate:      customer.CreatedAt,
		Addresses:     customer.Addresses,
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Customer fetched successfully", detail))
}
