package order_controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetOrders godoc
// @Summary Get paginated orders
// @Description Retrieve orders with an optional status filter
// @Tags CMS - Orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by status"
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/orders [get]
func GetOrders(c *gin.Context) {
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

	query := config.StoreGorm.WithContext(ctx).Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count orders"))
		return
	}

	orders := make([]models.Order, 0)
	if err := query.
		Preload("Customer").
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch orders"))
		return
	}

	rows := make([]models.OrderListRow, 0, len(orders))
	for _, order := range orders {
		row := models.OrderListRow{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			CustomerID:  order.CustomerID,
			ItemCount:   len(order.Items),
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
			CreatedAt:   order.CreatedAt,
		}
		for _, item := range order.Items {
			row.TotalQuantity += item.Quantity
		}
		if order.Customer != nil {
			row.CustomerName = order.Customer.Name
			row.CustomerEmail = order.Customer.Email
		}
		rows = append(rows, row)
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders fetched successfully", rows, meta))
}
