package product_controller

import (
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// Variants with less than this much stock count as low. Matches the
// low-stock listing on the inventory screen.
const lowStockThreshold = 5

// GetProductStats godoc
// @Summary Get product statistics
// @Description Returns overall product stats including low-stock counts
// @Tags CMS - Products
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products/stats [get]
func GetProductStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	var (
		totalProducts    int
		activeProducts   int
		draftProducts    int
		archivedProducts int
		averagePrice     float64
	)
	err := config.StoreDB.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'archived'),
			COALESCE(AVG(price), 0)
		FROM products
	`).Scan(&totalProducts, &activeProducts, &draftProducts, &archivedProducts, &averagePrice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to aggregate product stats"))
		return
	}

	var totalInventory int
	if err := config.StoreDB.QueryRow(ctx, `
		SELECT COALESCE(SUM(available), 0) FROM inventory_records
	`).Scan(&totalInventory); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to sum inventory"))
		return
	}

	var lowStockProducts int
	if err := config.StoreDB.QueryRow(ctx, `
		SELECT COUNT(DISTINCT pv.product_id)
		FROM product_variants pv
		JOIN inventory_records ir ON ir.variant_id = pv.id
		WHERE ir.available < $1
	`, lowStockThreshold).Scan(&lowStockProducts); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count low stock products"))
		return
	}

	percentageActive := 0.0
	if totalProducts > 0 {
		percentageActive = float64(activeProducts) / float64(totalProducts) * 100
	}

	stats := []models.ProductStatsResponseItem{
		{
			TotalProducts:    totalProducts,
			ActiveProducts:   activeProducts,
			DraftProducts:    draftProducts,
			ArchivedProducts: archivedProducts,
			PercentageActive: percentageActive,
			AveragePrice:     averagePrice,
			TotalInventory:   totalInventory,
			LowStockProducts: lowStockProducts,
		},
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product stats fetched successfully", stats))
}
