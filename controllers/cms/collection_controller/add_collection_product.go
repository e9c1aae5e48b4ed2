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

// AddCollectionProduct godoc
// @Summary Manually add a product to a collection
// @Description Pin a product into a collection regardless of its rules
// @Tags CMS - Collections
// @Accept json
// @Produce json
// @Param id path string true "Collection ID"
// @Param product body models.AddCollectionProductRequest true "Product to add"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/collections/{id}/products [post]
func AddCollectionProduct(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid collection ID"))
		return
	}

	var req models.AddCollectionProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := services.AddCollectionProduct(ctx, config.StoreGorm, collectionID, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Collection or product not found"))
			return
		}
		log.Printf("[collections] ❌ manual add failed for %s: %v", collectionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add product to collection"))
		return
	}

	collection_cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product added to collection", nil))
}
