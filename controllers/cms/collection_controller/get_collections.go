package collection_controller

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	collection_cache "github.com/Lumera-Commerce/lumera-storefront-backend/cache"
	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetCollections godoc
// @Summary Get paginated collections
// @Description Retrieve all collections with rule and member counts
// @Tags CMS - Collections
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/collections [get]
func GetCollections(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	cacheKey := fmt.Sprintf("p%d:l%d", page, limit)
	if rows, total, ok := collection_cache.GetList(cacheKey); ok {
		c.JSON(http.StatusOK, models.PaginatedResponse(c, "Collections fetched successfully", rows, &models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		}))
		return
	}

	var total int64
	if err := config.StoreGorm.Model(&models.Collection{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count collections"))
		return
	}

	collections := make([]models.Collection, 0)
	if err := config.StoreGorm.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&collections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch collections"))
		return
	}

	rows := make([]models.CollectionListRow, 0, len(collections))
	for _, collection := range collections {
		var ruleCount, productCount int64
		config.StoreGorm.Model(&models.CollectionRule{}).
			Where("collection_id = ?", collection.ID).Count(&ruleCount)
		config.StoreGorm.Model(&models.CollectionProduct{}).
			Where("collection_id = ?", collection.ID).Count(&productCount)

		rows = append(rows, models.CollectionListRow{
			ID:           collection.ID,
			Name:         collection.Name,
			Slug:         collection.Slug,
			RuleMatch:    collection.RuleMatch,
			SortOrder:    collection.SortOrder,
			Active:       collection.Active,
			RuleCount:    int(ruleCount),
			ProductCount: int(productCount),
			CreatedAt:    collection.CreatedAt,
			UpdatedAt:    collection.UpdatedAt,
		})
	}

	collection_cache.SetList(cacheKey, rows, int(total))

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Collections fetched successfully", rows, meta))
}
