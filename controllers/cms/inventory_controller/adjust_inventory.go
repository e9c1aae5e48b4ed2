package inventory_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdjustInventory godoc
// @Summary Adjust a variant's inventory
// @Description Apply a signed delta or set an absolute quantity; writes an adjustment audit row
// @Tags CMS - Inventory
// @Accept json
// @Produce json
// @Param variantId path string true "Variant ID"
// @Param adjustment body models.AdjustInventoryRequest true "Adjustment"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/inventory/{variantId}/adjust [post]
func AdjustInventory(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid variant ID"))
		return
	}

	var req models.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}
	if req.SetTo == nil && req.Delta == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Provide a non-zero delta or set_to"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// the auth middleware stores the admin id as a string claim
	var adminID *uuid.UUID
	if raw, exists := c.Get("adminID"); exists {
		if s, ok := raw.(string); ok {
			if id, err := uuid.Parse(s); err == nil {
				adminID = &id
			}
		}
	}

	var record models.InventoryRecord
	err = config.StoreGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var variant models.ProductVariant
		if err := tx.First(&variant, "id = ?", variantID).Error; err != nil {
			return err
		}
		if err := tx.Where("variant_id = ?", variantID).First(&record).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			record = models.InventoryRecord{VariantID: variantID, Available: 0}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		// set_to wins when both are supplied
		newAvailable := record.Available + req.Delta
		if req.SetTo != nil {
			newAvailable = *req.SetTo
		}
		if newAvailable < 0 {
			return errInsufficientStock
		}

		delta := newAvailable - record.Available
		if err := tx.Model(&record).Update("available", newAvailable).Error; err != nil {
			return err
		}
		record.Available = newAvailable

		return tx.Create(&models.InventoryAdjustment{
			VariantID: variantID,
			ProductID: variant.ProductID,
			Delta:     delta,
			Reason:    req.Reason,
			AdminID:   adminID,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Variant not found"))
			return
		}
		if errors.Is(err, errInsufficientStock) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Adjustment would make stock negative"))
			return
		}
		log.Printf("[inventory] ❌ adjustment failed for variant %s: %v", variantID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to adjust inventory"))
		return
	}

	log.Printf("[inventory] ✅ variant %s adjusted to %d", variantID, record.Available)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Inventory adjusted successfully", record))
}

var errInsufficientStock = errors.New("insufficient stock")
