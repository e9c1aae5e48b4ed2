package collection_controller

import (
	"errors"
	"log"
	"net/http"

	collection_cache "github.com/Lumera-Commerce/lumera-storefront-backend/cache"
	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegenerateCollection godoc
// @Summary Regenerate collection membership
// @Description Re-run the rule engine against the current product catalog using the persisted rules
// @Tags CMS - Collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/collections/{id}/regenerate [post]
func RegenerateCollection(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid collection ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := services.RegenerateCollectionProducts(ctx, config.StoreGorm, collectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Collection not found"))
			return
		}
		log.Printf("[collections] regeneration failed for %s: %v", collectionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to regenerate collection products"))
		return
	}

	collection_cache.Invalidate()

	var memberCount int64
	if err := config.StoreGorm.WithContext(ctx).
		Model(&models.CollectionProduct{}).
		Where("collection_id = ?", collectionID).
		Count(&memberCount).Error; err != nil {
		log.Printf("[collections] failed to count members: %v", err)
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Collection regenerated successfully", gin.H{
		"collection_id": collectionID,
		"member_count":  memberCount,
	}))
}
