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
)

// CreateCollection godoc
// @Summary Create a new collection
// @Description Create a collection with optional rules; rule-based membership is generated immediately
// @Tags CMS - Collections
// @Accept json
// @Produce json
// @Param collection body models.CollectionRequest true "Collection details"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/collections [post]
func CreateCollection(c *gin.Context) {
	var req models.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if req.RuleMatch == "" {
		req.RuleMatch = models.MatchAll
	}
	if req.SortOrder == "" {
		req.SortOrder = models.SortManual
	}

	collection := models.Collection{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		RuleMatch:   req.RuleMatch,
		SortOrder:   req.SortOrder,
		Active:      true,
	}
	if req.Active != nil {
		collection.Active = *req.Active
	}
	if req.SEO != nil {
		collection.SEO = *req.SEO
	}

	if err := config.StoreGorm.WithContext(ctx).Create(&collection).Error; err != nil {
		log.Printf("[collections] failed to create: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create collection"))
		return
	}

	// Persist rules in their given order
	for i, input := range req.Rules {
		rule := models.CollectionRule{
			CollectionID: collection.ID,
			RuleType:     input.RuleType,
			Operator:     input.Operator,
			Value:        input.Value,
			Position:     i,
		}
		if err := config.StoreGorm.WithContext(ctx).Create(&rule).Error; err != nil {
			log.Printf("[collections] failed to create rule: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create collection rules"))
			return
		}
	}

	// Derive the initial automatic membership
	if err := services.RegenerateCollectionProducts(ctx, config.StoreGorm, collection.ID); err != nil {
		log.Printf("[collections] regeneration failed for %s: %v", collection.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate collection products"))
		return
	}

	collection_cache.Invalidate()

	if err := config.StoreGorm.WithContext(ctx).
		Preload("Rules").
		First(&collection, "id = ?", collection.ID).Error; err != nil {
		log.Printf("[collections] failed to reload: %v", err)
		// Collection is created, just missing rules in the payload - still return success
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Collection created successfully", collection))
}
