package order_controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DownloadOrderInvoice godoc
// @Summary Download an order invoice PDF
// @Description Generates the invoice for an order and streams it as a PDF attachment
// @Tags CMS - Orders
// @Produce application/pdf
// @Param id path string true "Order ID"
// @Success 200 {file} binary
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/orders/{id}/invoice [get]
func DownloadOrderInvoice(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid order ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var order models.Order
	if err := config.StoreGorm.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch order"))
		return
	}

	customerName, customerEmail := "", ""
	if order.Customer != nil {
		customerName = order.Customer.Name
		customerEmail = order.Customer.Email
	}

	buf := services.GenerateOrderInvoicePDF(&order, order.Items, customerName, customerEmail)
	if buf.Len() == 0 {
		log.Printf("[orders] ❌ invoice generation failed for %s", order.OrderNumber)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate invoice"))
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", order.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
