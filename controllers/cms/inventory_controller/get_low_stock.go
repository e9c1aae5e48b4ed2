package inventory_controller

import (
	"net/http"
	"strconv"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetLowStock godoc
// @Summary Get low-stock variants
// @Description List variants whose available stock is below the threshold
// @Tags CMS - Inventory
// @Produce json
// @Param threshold query int false "Low-stock threshold" default(5)
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/inventory/low-stock [get]
func GetLowStock(c *gin.Context) {
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold", "5"))
	if err != nil || threshold < 0 {
		threshold = 5
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rows := make([]models.LowStockRow, 0)
	if err := config.StoreGorm.WithContext(ctx).
		Table("inventory_records").
		Select(`product_variants.product_id, products.name AS product_name,
			inventory_records.variant_id, product_variants.sku,
			inventory_records.available`).
		Joins("JOIN product_variants ON product_variants.id = inventory_records.variant_id").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("inventory_records.available < ?", threshold).
		Order("inventory_records.available ASC").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch low stock variants"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Low stock variants fetched successfully", rows))
}
