package product_controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// SearchProducts godoc
// @Summary Search products
// @Description Search products by name, description or tags (case-insensitive)
// @Tags CMS - Products
// @Produce json
// @Param query query string true "Search keyword"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Router /api/v1/admin/products/search [get]
func SearchProducts(c *gin.Context) {
	queryParam := c.Query("query")
	if queryParam == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Query parameter 'query' is required"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	ctx, cancel := config.WithTimeout()
	defer cancel()

	searchPattern := "%" + queryParam + "%"
	searchClause := `
		name ILIKE ? OR
		description ILIKE ? OR
		EXISTS (
			SELECT 1 FROM product_variants pv
			WHERE pv.product_id = products.id AND pv.sku ILIKE ?
		) OR
		EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(tags) AS tag
			WHERE tag ILIKE ?
		)
	`

	var total int64
	if err := config.StoreGorm.WithContext(ctx).
		Model(&models.Product{}).
		Where(searchClause, searchPattern, searchPattern, searchPattern, searchPattern).
		Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count products"))
		return
	}

	if total == 0 {
		meta := &models.Pagination{Page: page, Limit: limit, Total: 0, TotalPages: 0}
		c.JSON(http.StatusOK, models.PaginatedResponse(c, "No results found", make([]models.Product, 0), meta))
		return
	}

	products := make([]models.Product, 0)
	if err := config.StoreGorm.WithContext(ctx).
		Where(searchClause, searchPattern, searchPattern, searchPattern, searchPattern).
		Preload("Category").
		Preload("Vendor").
		Preload("Variants").
		Preload("Variants.Inventory").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Search results", products, meta))
}
