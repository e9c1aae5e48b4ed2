package order_controller

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateOrderStatus godoc
// @Summary Update an order's status
// @Description Move an order through its fulfillment states; stamps shipped_at / delivered_at
// @Tags CMS - Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param status body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/orders/{id}/status [patch]
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var order models.Order
	if err := config.StoreGorm.WithContext(ctx).
		First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	updates := map[string]any{"status": req.Status}
	now := time.Now()
	switch req.Status {
	case models.OrderStatusShipped:
		if order.ShippedAt == nil {
			updates["shipped_at"] = now
		}
	case models.OrderStatusDelivered:
		if order.DeliveredAt == nil {
			updates["delivered_at"] = now
		}
	}

	if err := config.StoreGorm.WithContext(ctx).
		Model(&order).
		Updates(updates).Error; err != nil {
		log.Printf("[orders] ❌ failed to update status for %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update order status"))
		return
	}

	log.Printf("[orders] ✅ order %s status → %s", order.OrderNumber, req.Status)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order status updated successfully", order))
}
