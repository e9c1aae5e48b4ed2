package order_controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// SearchOrders godoc
// @Summary Search orders
// @Description Search orders by order number or customer email (case-insensitive)
// @Tags CMS - Orders
// @Produce json
// @Param query query string true "Search keyword"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Router /api/v1/admin/orders/search [get]
func SearchOrders(c *gin.Context) {
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
	base := config.StoreGorm.WithContext(ctx).
		Model(&models.Order{}).
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.order_number ILIKE ? OR customers.email ILIKE ?", searchPattern, searchPattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count orders"))
		return
	}

	orders := make([]models.Order, 0)
	if err := base.
		Preload("Customer").
		Preload("Items").
		Order("orders.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to search orders"))
		return
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Search results", orders, meta))
}
