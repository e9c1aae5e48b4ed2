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

// RemoveCartItem godoc
// @Summary Remove a cart item
// @Tags store
// @Produce json
// @Param token path string true "Cart token"
// @Param itemId path string true "Cart item ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/cart/{token}/items/{itemId} [delete]
func RemoveCartItem(c *gin.Context) {
	token := c.Param("token")
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid item ID"))
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

	result := config.StoreGorm.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cart.ID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to remove cart item"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Cart item not found"))
		return
	}

	if err := config.StoreGorm.WithContext(ctx).
		Preload("Items").
		First(&cart, "id = ?", cart.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to reload cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item removed from cart", cartResponse(&cart)))
}

// ClearCart godoc
// @Summary Clear a cart
// @Description Remove every item from the cart
// @Tags store
// @Produce json
// @Param token path string true "Cart token"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/cart/{token}/items [delete]
func ClearCart(c *gin.Context) {
	token := c.Param("token")

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

	if err := config.StoreGorm.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Delete(&models.CartItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to clear cart"))
		return
	}

	cart.Items = nil
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart cleared", cartResponse(&cart)))
}
