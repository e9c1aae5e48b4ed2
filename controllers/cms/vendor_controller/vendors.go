package vendor_controller

import (
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetVendors godoc
// @Summary Get all vendors
// @Tags CMS - Vendors
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/vendors [get]
func GetVendors(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	vendors := make([]models.Vendor, 0)
	if err := config.StoreGorm.WithContext(ctx).
		Order("name ASC").
		Find(&vendors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch vendors"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Vendors fetched successfully", vendors))
}

// CreateVendor godoc
// @Summary Create a vendor
// @Tags CMS - Vendors
// @Accept json
// @Produce json
// @Param vendor body models.VendorRequest true "Vendor details"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/vendors [post]
func CreateVendor(c *gin.Context) {
	var req models.VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	vendor := models.Vendor{
		Name: req.Name,
		Slug: utils.Slugify(req.Name),
	}
	if err := config.StoreGorm.WithContext(ctx).Create(&vendor).Error; err != nil {
		log.Printf("[vendors] ❌ failed to create vendor: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create vendor"))
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Vendor created successfully", vendor))
}

// DeleteVendor godoc
// @Summary Delete a vendor
// @Tags CMS - Vendors
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/vendors/{id} [delete]
func DeleteVendor(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid vendor ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.StoreGorm.WithContext(ctx).
		Model(&models.Product{}).
		Where("vendor_id = ?", vendorID).
		Update("vendor_id", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to detach products"))
		return
	}

	result := config.StoreGorm.WithContext(ctx).Delete(&models.Vendor{}, "id = ?", vendorID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete vendor"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Vendor not found"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Vendor deleted successfully", nil))
}
