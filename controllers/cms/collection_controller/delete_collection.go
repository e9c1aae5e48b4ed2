package collection_controller

import (
	"log"
	"net/http"

	collection_cache "github.com/Lumera-Commerce/lumera-storefront-backend/cache"
	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeleteCollection godoc
// @Summary Delete a collection
// @Description Delete a collection along with its rules and memberships
// @Tags CMS - Collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/collections/{id} [delete]
func DeleteCollection(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid collection ID"))
		return
	}

	result := config.StoreGorm.Delete(&models.Collection{}, "id = ?", collectionID)
	if result.Error != nil {
		log.Printf("[collections] ❌ delete failed for %s: %v", collectionID, result.Error)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete collection"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Collection not found"))
		return
	}

	collection_cache.Invalidate()
	log.Printf("[collections] ✅ deleted collection %s", collectionID)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Collection deleted successfully", nil))
}
