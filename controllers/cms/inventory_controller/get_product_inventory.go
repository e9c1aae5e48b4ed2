package inventory_controller

import (
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetProductInventory godoc
// @Summary Get a product's inventory
// @Description List every variant of a product with its available stock
// @Tags CMS - Inventory
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products/{id}/inventory [get]
func GetProductInventory(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var count int64
	if err := config.StoreGorm.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	rows := make([]models.VariantInventoryRow, 0)
	if err := config.StoreGorm.WithContext(ctx).
		Table("product_variants").
		Select(`product_variants.id AS variant_id, product_variants.sku,
			product_variants.name AS variant_name, product_variants.is_default,
			COALESCE(inventory_records.available, 0) AS available,
			COALESCE(inventory_records.updated_at, product_variants.updated_at) AS updated_at`).
		Joins("LEFT JOIN inventory_records ON inventory_records.variant_id = product_variants.id").
		Where("product_variants.product_id = ?", productID).
		Order("product_variants.created_at ASC").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch inventory"))
		return
	}

	totalAvailable := 0
	for _, row := range rows {
		totalAvailable += row.Available
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Inventory fetched successfully", gin.H{
		"variants":        rows,
		"total_available": totalAvailable,
	}))
}
