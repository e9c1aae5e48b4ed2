package collection_controller

import (
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetStorefrontCollections godoc
// @Summary Get storefront collections
// @Description List active collections for storefront navigation
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/collections [get]
func GetStorefrontCollections(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	collections := make([]models.Collection, 0)
	if err := config.StoreGorm.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&collections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch collections"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Collections fetched successfully", collections))
}
