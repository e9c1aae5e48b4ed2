package product_controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetStorefrontProducts godoc
// @Summary Get storefront products
// @Description Paginated active products with optional search, category, vendor, tag and price filters
// @Tags store
// @Produce json
// @Param q query string false "Search query"
// @Param category query []string false "Category IDs (repeatable)"
// @Param vendor query []string false "Vendor IDs (repeatable)"
// @Param tag query []string false "Tags (repeatable)"
// @Param availability query string false "Availability filter" Enums(in_stock, out_of_stock)
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param sortBy query string false "Sort by field" Enums(price, name, newest) default(newest)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/products [get]
func GetStorefrontProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := config.StoreGorm.WithContext(ctx).
		Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive)

	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if categories := c.QueryArray("category"); len(categories) > 0 {
		query = query.Where("category_id IN ?", categories)
	}
	if vendors := c.QueryArray("vendor"); len(vendors) > 0 {
		query = query.Where("vendor_id IN ?", vendors)
	}
	for _, tag := range c.QueryArray("tag") {
		query = query.Where(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS t WHERE t = ?)", tag)
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}

	stockClause := `EXISTS (
		SELECT 1 FROM product_variants pv
		JOIN inventory_records ir ON ir.variant_id = pv.id
		WHERE pv.product_id = products.id AND ir.available > 0
	)`
	switch c.Query("availability") {
	case "in_stock":
		query = query.Where(stockClause)
	case "out_of_stock":
		query = query.Where("NOT " + stockClause)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count products"))
		return
	}

	products := make([]models.Product, 0)
	if err := query.
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Variants.Inventory").
		Order(sortClause(c)).
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

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", products, meta))
}

func sortClause(c *gin.Context) string {
	direction := "DESC"
	if c.DefaultQuery("sortOrder", "desc") == "asc" {
		direction = "ASC"
	}
	switch c.DefaultQuery("sortBy", "newest") {
	case "price":
		return "price " + direction
	case "name":
		return "name " + direction
	default:
		return "created_at " + direction
	}
}
