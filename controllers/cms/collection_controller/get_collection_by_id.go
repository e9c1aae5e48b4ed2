package collection_controller

import (
	"errors"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCollectionByID godoc
// @Summary Get a single collection
// @Description Retrieve a collection with its rules and current members
// @Tags CMS - Collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/collections/{id} [get]
func GetCollectionByID(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid collection ID"))
		return
	}

	var collection models.Collection
	if err := config.StoreGorm.
		Preload("Rules", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&collection, "id = ?", collectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Collection not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch collection"))
		return
	}

	members := make([]models.CollectionMemberRow, 0)
	if err := config.StoreGorm.
		Table("collection_products").
		Select("collection_products.product_id, products.name AS product_name, collection_products.position, collection_products.is_manual").
		Joins("JOIN products ON products.id = collection_products.product_id").
		Where("collection_products.collection_id = ?", collectionID).
		Order("collection_products.position ASC").
		Scan(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch collection members"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Collection fetched successfully", gin.H{
		"collection": collection,
		"members":    members,
	}))
}
