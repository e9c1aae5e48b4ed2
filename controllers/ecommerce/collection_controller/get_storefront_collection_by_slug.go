package collection_controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const collectionCacheTTL = 5 * time.Minute

type storefrontCollectionPayload struct {
	Collection models.Collection `json:"collection"`
	Products   []models.Product  `json:"products"`
}

// GetStorefrontCollectionBySlug godoc
// @Summary Get a storefront collection
// @Description Retrieve an active collection and its member products, Redis-cached
// @Tags store
// @Produce json
// @Param slug path string true "Collection slug"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/collections/{slug} [get]
func GetStorefrontCollectionBySlug(c *gin.Context) {
	slug := c.Param("slug")
	cacheKey := "store:collection:" + slug

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var payload storefrontCollectionPayload
			if json.Unmarshal([]byte(cached), &payload) == nil {
				c.JSON(http.StatusOK, models.SuccessResponse(c, "Collection fetched successfully", payload))
				return
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("[collections] ⚠️  redis read failed for %s: %v", cacheKey, err)
		}
	}

	var collection models.Collection
	if err := config.StoreGorm.WithContext(ctx).
		Where("slug = ? AND active = ?", slug, true).
		First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Collection not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch collection"))
		return
	}

	products := make([]models.Product, 0)
	if err := config.StoreGorm.WithContext(ctx).
		Joins("JOIN collection_products cp ON cp.product_id = products.id").
		Where("cp.collection_id = ? AND products.status = ?", collection.ID, models.ProductStatusActive).
		Order("cp.position ASC").
		Preload("Variants").
		Preload("Variants.Inventory").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch collection products"))
		return
	}

	payload := storefrontCollectionPayload{Collection: collection, Products: products}

	if config.RedisClient != nil {
		if raw, err := json.Marshal(payload); err == nil {
			if err := config.RedisClient.Set(ctx, cacheKey, raw, collectionCacheTTL).Err(); err != nil {
				log.Printf("[collections] ⚠️  redis write failed for %s: %v", cacheKey, err)
			}
		}
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Collection fetched successfully", payload))
}
