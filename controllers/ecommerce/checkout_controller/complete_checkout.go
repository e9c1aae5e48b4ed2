package checkout_controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/services"
	"github.com/Lumera-Commerce/lumera-storefront-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompleteCheckout godoc
// @Summary Complete a checkout
// @Description Turn the checkout into an order, decrement stock and clear the cart
// @Tags store
// @Accept json
// @Produce json
// @Param id path string true "Checkout ID"
// @Param completion body models.CompleteCheckoutRequest false "Customer name for first-time shoppers"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/checkout/{id}/complete [post]
func CompleteCheckout(c *gin.Context) {
	checkoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid checkout ID"))
		return
	}

	var req models.CompleteCheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
			return
		}
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := services.CompleteCheckout(ctx, config.StoreGorm, checkoutID, req.CustomerName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Checkout not found"))
			return
		}
		if strings.Contains(err.Error(), "already completed") {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Checkout is already completed"))
			return
		}
		log.Printf("[checkout] ❌ completion failed for %s: %v", checkoutID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to complete checkout"))
		return
	}

	utils.LogCheckoutEvent(ctx, checkoutID, utils.CheckoutEventRecovered)

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order placed successfully", order))
}
