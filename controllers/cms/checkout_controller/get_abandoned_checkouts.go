package checkout_controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetAbandonedCheckouts godoc
// @Summary List abandoned checkouts
// @Description Retrieve incomplete checkouts with an optional recovery-status filter
// @Tags CMS - Checkouts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by recovery status (pending, email_sent, recovered, expired)"
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/checkouts/abandoned [get]
func GetAbandonedCheckouts(c *gin.Context) {
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

	query := config.StoreGorm.WithContext(ctx).Model(&models.Checkout{})
	if status := c.Query("status"); status != "" {
		query = query.Where("recovery_status = ?", status)
	} else {
		query = query.Where("completed_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count checkouts"))
		return
	}

	rows := make([]models.AbandonedCheckoutRow, 0)
	if err := query.
		Select("id, email, total_amount, recovery_status, emails_sent, next_email_at, created_at").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch checkouts"))
		return
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Abandoned checkouts fetched successfully", rows, meta))
}
