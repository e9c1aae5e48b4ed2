package product_controller

import (
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProduct godoc
// @Summary Create a new product
// @Description Create a product with its variants and opening inventory
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Param product body models.ProductRequest true "Product details"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products [post]
func CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[products] invalid request: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	if req.Status == "" {
		req.Status = models.ProductStatusDraft
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if req.CategoryID != nil {
		var count int64
		if err := config.StoreGorm.WithContext(ctx).
			Model(&models.Category{}).
			Where("id = ?", *req.CategoryID).
			Count(&count).Error; err != nil || count == 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category_id"))
			return
		}
	}
	if req.VendorID != nil {
		var count int64
		if err := config.StoreGorm.WithContext(ctx).
			Model(&models.Vendor{}).
			Where("id = ?", *req.VendorID).
			Count(&count).Error; err != nil || count == 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid vendor_id"))
			return
		}
	}

	product := models.Product{
		Name:           req.Name,
		Slug:           utils.Slugify(req.Name),
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		CategoryID:     req.CategoryID,
		VendorID:       req.VendorID,
		Status:         req.Status,
		Tags:           models.TagsList(req.Tags),
	}
	if req.SEO != nil {
		product.SEO = *req.SEO
	}

	err := config.StoreGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}

		// Every product carries at least one variant so inventory has a home.
		inputs := req.Variants
		if len(inputs) == 0 {
			inputs = []models.VariantInput{{
				SKU:       product.Slug + "-default",
				Name:      "Default",
				IsDefault: true,
			}}
		}

		for i, input := range inputs {
			variant := models.ProductVariant{
				ProductID:     product.ID,
				SKU:           input.SKU,
				Name:          input.Name,
				PriceOverride: input.PriceOverride,
				IsDefault:     input.IsDefault || (i == 0 && !anyDefault(inputs)),
			}
			if err := tx.Create(&variant).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.InventoryRecord{
				VariantID: variant.ID,
				Available: input.Available,
			}).Error; err != nil {
				return err
			}
			if variant.IsDefault && product.DefaultVariantID == nil {
				id := variant.ID
				product.DefaultVariantID = &id
			}
		}

		return tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("default_variant_id", product.DefaultVariantID).Error
	})
	if err != nil {
		log.Printf("[products] ❌ failed to create product: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create product: "+err.Error()))
		return
	}

	if err := config.StoreGorm.WithContext(ctx).
		Preload("Variants").
		Preload("Variants.Inventory").
		First(&product, "id = ?", product.ID).Error; err != nil {
		log.Printf("[products] ⚠️  failed to reload product %s: %v", product.ID, err)
		// product exists, just return it without relations
	}

	log.Printf("[products] ✅ created product %s (%s)", product.Name, product.ID)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created successfully", product))
}

func anyDefault(inputs []models.VariantInput) bool {
	for _, input := range inputs {
		if input.IsDefault {
			return true
		}
	}
	return false
}
