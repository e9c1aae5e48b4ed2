package product_controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetProducts godoc
// @Summary Get paginated products
// @Description Retrieve products with optional status, category and vendor filters
// @Tags CMS - Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by status (draft, active, archived)"
// @Param category_id query string false "Filter by category"
// @Param vendor_id query string false "Filter by vendor"
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products [get]
func GetProducts(c *gin.Context) {
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

	query := config.StoreGorm.WithContext(ctx).Model(&models.Product{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count products"))
		return
	}

	products := make([]models.Product, 0)
	if err := query.
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

	rows := make([]models.ProductListRow, 0, len(products))
	for _, product := range products {
		row := models.ProductListRow{
			ID:             product.ID,
			Name:           product.Name,
			Slug:           product.Slug,
			Price:          product.Price,
			CompareAtPrice: product.CompareAtPrice,
			Status:         product.Status,
			Tags:           product.Tags,
			TotalInventory: totalInventory(product),
			CreatedAt:      product.CreatedAt,
			UpdatedAt:      product.UpdatedAt,
		}
		if product.Category != nil {
			row.CategoryName = &product.Category.Name
		}
		if product.Vendor != nil {
			row.VendorName = &product.Vendor.Name
		}
		rows = append(rows, row)
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", rows, meta))
}

// totalInventory sums available stock across a product's variants.
func totalInventory(product models.Product) int {
	total := 0
	for _, variant := range product.Variants {
		if variant.Inventory != nil {
			total += variant.Inventory.Available
		}
	}
	return total
}
