package order_controller

import (
	"errors"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetStorefrontOrders godoc
// @Summary Get a shopper's orders
// @Description Retrieve order history for an email address
// @Tags store
// @Produce json
// @Param email query string true "Customer email"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/orders [get]
func GetStorefrontOrders(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Query parameter 'email' is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	orders := make([]models.Order, 0)
	if err := config.StoreGorm.WithContext(ctx).
		Preload("Items").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("customers.email = ?", email).
		Order("orders.created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Orders fetched successfully", orders))
}

// GetStorefrontOrderByNumber godoc
// @Summary Get one of a shopper's orders
// @Description Retrieve an order by number; the email must match the order's customer
// @Tags store
// @Produce json
// @Param number path string true "Order number"
// @Param email query string true "Customer email"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/orders/{number} [get]
func GetStorefrontOrderByNumber(c *gin.Context) {
	number := c.Param("number")
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Query parameter 'email' is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var order models.Order
	if err := config.StoreGorm.WithContext(ctx).
		Preload("Items").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.order_number = ? AND customers.email = ?", number, email).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order fetched successfully", order))
}
