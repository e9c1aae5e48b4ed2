package customer_controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetCustomers godoc
// @Summary Get paginated customers
// @Description Retrieve customers with order counts and lifetime spend
// @Tags CMS - Customers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param query query string false "Filter by name or email"
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/customers [get]
func GetCustomers(c *gin.Context) {
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

	query := config.StoreGorm.WithContext(ctx).Model(&models.Customer{})
	if search := c.Query("query"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count customers"))
		return
	}

	rows := make([]models.CustomerListRow, 0)
	if err := query.
		Select(`customers.id, customers.name, customers.email,
			COUNT(orders.id) AS orders,
			COALESCE(SUM(orders.total_amount), 0) AS total_spent,
			customers.created_at AS join_date`).
		Joins("LEFT JOIN orders ON orders.customer_id = customers.id AND orders.status <> 'cancelled'").
		Group("customers.id").
		Order("customers.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch customers"))
		return
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Customers fetched successfully", rows, meta))
}
