package collection_controller

import (
	"log"
	"net/http"

	collection_cache "github.com/Lumera-Commerce/lumera-storefront-backend/cache"
	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/services"
	"github.com/Lumera-Commerce/lumera-storefront-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateCollection godoc
// @Summary Update a collection
// @Description Update collection fields; when rules are provided they replace the existing set wholesale and membership is regenerated
// @Tags CMS - Collections
// @Accept json
// @Produce json
// @Param id path string true "Collection ID"
// @Param collection body models.UpdateCollectionRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/collections/{id} [patch]
func UpdateCollection(c *gin.Context) {
	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid collection ID"))
		return
	}

	var req models.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var collection models.Collection
	if err := config.StoreGorm.WithContext(ctx).
		First(&collection, "id = ?", collectionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Collection not found"))
		} else {
			log.Printf("[collections] database error: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		}
		return
	}

	if req.Name != nil {
		collection.Name = *req.Name
		collection.Slug = utils.Slugify(*req.Name)
	}
	if req.Description != nil {
		collection.Description = *req.Description
	}
	if req.ImageURL != nil {
		collection.ImageURL = req.ImageURL
	}
	if req.RuleMatch != nil {
		collection.RuleMatch = *req.RuleMatch
	}
	if req.SortOrder != nil {
		collection.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		collection.Active = *req.Active
	}
	if req.SEO != nil {
		collection.SEO = *req.SEO
	}

	if err := config.StoreGorm.WithContext(ctx).Save(&collection).Error; err != nil {
		log.Printf("[collections] failed to update: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update collection"))
		return
	}

	// Rules are replaced wholesale, never diffed
	if req.Rules != nil {
		if err := config.StoreGorm.WithContext(ctx).
			Where("collection_id = ?", collectionID).
			Delete(&models.CollectionRule{}).Error; err != nil {
			log.Printf("[collections] failed to clear rules: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to replace collection rules"))
			return
		}
		for i, input := range *req.Rules {
			rule := models.CollectionRule{
				CollectionID: collectionID,
				RuleType:     input.RuleType,
				Operator:     input.Operator,
				Value:        input.Value,
				Position:     i,
			}
			if err := config.StoreGorm.WithContext(ctx).Create(&rule).Error; err != nil {
				log.Printf("[collections] failed to create rule: %v", err)
				c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to replace collection rules"))
				return
			}
		}
	}

	// Every update reruns the engine, even if only fields changed: a
	// rule_match flip alone changes membership.
	if err := services.RegenerateCollectionProducts(ctx, config.StoreGorm, collectionID); err != nil {
		log.Printf("[collections] regeneration failed for %s: %v", collectionID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to regenerate collection products"))
		return
	}

	collection_cache.Invalidate()

	if err := config.StoreGorm.WithContext(ctx).
		Preload("Rules").
		First(&collection, "id = ?", collectionID).Error; err != nil {
		log.Printf("[collections] failed to reload: %v", err)
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Collection updated successfully", collection))
}
