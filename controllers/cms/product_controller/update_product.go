package product_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpdateProduct godoc
// @Summary Update a product
// @Description Partially update a product's attributes
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products/{id} [patch]
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var product models.Product
	if err := config.StoreGorm.WithContext(ctx).
		First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = utils.Slugify(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.CompareAtPrice != nil {
		updates["compare_at_price"] = *req.CompareAtPrice
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.VendorID != nil {
		updates["vendor_id"] = *req.VendorID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Tags != nil {
		updates["tags"] = models.TagsList(*req.Tags)
	}
	if req.SEO != nil {
		updates["seo"] = *req.SEO
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "No fields to update"))
		return
	}

	if err := config.StoreGorm.WithContext(ctx).
		Model(&product).
		Updates(updates).Error; err != nil {
		log.Printf("[products] ❌ failed to update product %s: %v", productID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update product"))
		return
	}

	if err := config.StoreGorm.WithContext(ctx).
		Preload("Variants").
		Preload("Variants.Inventory").
		First(&product, "id = ?", productID).Error; err != nil {
		log.Printf("[products] ⚠️  failed to reload product %s: %v", productID, err)
	}

	log.Printf("[products] ✅ updated product %s", productID)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product updated successfully", product))
}
