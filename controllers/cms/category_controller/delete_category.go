package category_controller

import (
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category. Products keep their rows with a dangling reference cleared.
// @Tags CMS - Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var childCount int64
	if err := config.StoreGorm.WithContext(ctx).
		Model(&models.Category{}).
		Where("parent_id = ?", categoryID).
		Count(&childCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if childCount > 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Category has subcategories; delete or move them first"))
		return
	}

	// detach products before removing the category
	if err := config.StoreGorm.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to detach products"))
		return
	}

	result := config.StoreGorm.WithContext(ctx).Delete(&models.Category{}, "id = ?", categoryID)
	if result.Error != nil {
		log.Printf("[categories] ❌ failed to delete category %s: %v", categoryID, result.Error)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete category"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Category not found"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category deleted successfully", nil))
}
