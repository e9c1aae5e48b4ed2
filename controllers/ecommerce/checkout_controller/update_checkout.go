package checkout_controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateCheckout godoc
// @Summary Update a checkout
// @Description Set or change the checkout's email and shipping address before completion
// @Tags store
// @Accept json
// @Produce json
// @Param id path string true "Checkout ID"
// @Param checkout body models.UpdateCheckoutRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/checkout/{id} [patch]
func UpdateCheckout(c *gin.Context) {
	checkoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid checkout ID"))
		return
	}

	var req models.UpdateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var checkout models.Checkout
	if err := config.StoreGorm.WithContext(ctx).
		First(&checkout, "id = ?", checkoutID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Checkout not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if checkout.CompletedAt != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Checkout is already completed"))
		return
	}

	updates := map[string]any{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.ShippingAddress != nil {
		raw, err := json.Marshal(req.ShippingAddress)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid shipping address"))
			return
		}
		updates["shipping_address"] = raw
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "No fields to update"))
		return
	}

	if err := config.StoreGorm.WithContext(ctx).
		Model(&checkout).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update checkout"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Checkout updated successfully", checkout))
}
