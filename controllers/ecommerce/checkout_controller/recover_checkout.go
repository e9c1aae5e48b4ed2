package checkout_controller

import (
	"errors"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecoverCheckout godoc
// @Summary Resume a checkout from a recovery link
// @Description Resolve the recovery token from an abandoned-checkout email back to the checkout
// @Tags store
// @Produce json
// @Param token path string true "Recovery token"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 410 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/checkout/recover/{token} [get]
func RecoverCheckout(c *gin.Context) {
	token := c.Param("token")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var checkout models.Checkout
	if err := config.StoreGorm.WithContext(ctx).
		Where("recovery_token = ?", token).
		First(&checkout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Recovery link is invalid"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	if checkout.CompletedAt != nil {
		c.JSON(http.StatusGone, models.ErrorResponse(c, "Checkout was already completed"))
		return
	}
	if checkout.RecoveryStatus == models.RecoveryStatusExpired {
		c.JSON(http.StatusGone, models.ErrorResponse(c, "Recovery link has expired"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Checkout recovered", checkout))
}
