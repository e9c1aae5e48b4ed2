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

// RemoveCollectionProduct godoc
// @Summary Remove a product from a collection
// @Description Remove a membership row whether it was manual or rule-generated
// @Tags CMS - Collections
// @Produce json
// @Param id path string true "Collection ID"
// @Param productId path string true "Product ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/collections/{id}/products/{productId} [delete]
func RemoveCollectionProduct(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid collection ID"))
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := services.RemoveCollectionProduct(ctx, config.StoreGorm, collectionID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product is not in this collection"))
			return
		}
		log.Printf("[collections] ❌ remove failed for %s: %v", collectionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to remove product from collection"))
		return
	}

	collection_cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product removed from collection", nil))
}
