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
	"gorm.io/gorm"
)

// StartCheckout godoc
// @Summary Start a checkout
// @Description Freeze the cart into a checkout and arm abandoned-checkout recovery
// @Tags store
// @Accept json
// @Produce json
// @Param checkout body models.StartCheckoutRequest true "Cart token and email"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/checkout [post]
func StartCheckout(c *gin.Context) {
	var req models.StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	checkout, err := services.StartCheckout(ctx, config.StoreGorm, req.CartToken, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart not found"))
			return
		}
		if strings.Contains(err.Error(), "is empty") {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Cart is empty"))
			return
		}
		log.Printf("[checkout] ❌ failed to start checkout: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to start checkout"))
		return
	}

	utils.LogCheckoutEvent(ctx, checkout.ID, utils.CheckoutEventStarted)

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Checkout started", checkout))
}
