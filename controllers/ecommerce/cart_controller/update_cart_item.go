package cart_controller

import (
	"errors"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateCartItem godoc
// @Summary Update a cart item's quantity
// @Description Set the quantity of a cart line; zero removes the line
// @Tags store
// @Accept json
// @Produce json
// @Param token path string true "Cart token"
// @Param itemId path string true "Cart item ID"
// @Param item body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/cart/{token}/items/{itemId} [patch]
func UpdateCartItem(c *gin.Context) {
	token := c.Param("token")
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid item ID"))
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var cart models.Cart
	if err := config.StoreGorm.WithContext(ctx).
		Where("token = ?", token).
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	var item models.CartItem
	if err := config.StoreGorm.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cart.ID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	if req.Quantity == 0 {
		if err := config.StoreGorm.WithContext(ctx).Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to remove cart item"))
			return
		}
	} else {
		if err := config.StoreGorm.WithContext(ctx).
			Model(&item).
			Update("quantity", req.Quantity).Error; err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart item"))
			return
		}
	}

	if err := config.StoreGorm.WithContext(ctx).
		Preload("Items").
		First(&cart, "id = ?", cart.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to reload cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart updated successfully", cartResponse(&cart)))
}
