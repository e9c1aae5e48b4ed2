package product_controller

import (
	"errors"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetStorefrontProductBySlug godoc
// @Summary Get a storefront product
// @Description Retrieve one active product by slug with variants and stock
// @Tags store
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/products/{slug} [get]
func GetStorefrontProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var product models.Product
	if err := config.StoreGorm.WithContext(ctx).
		Preload("Category").
		Preload("Vendor").
		Preload("Variants").
		Preload("Variants.Inventory").
		Where("slug = ? AND status = ?", slug, models.ProductStatusActive).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch product"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}
