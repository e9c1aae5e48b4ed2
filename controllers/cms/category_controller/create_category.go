package category_controller

import (
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/utils"
	"github.com/gin-gonic/gin"
)

// CreateCategory godoc
// @Summary Create a category
// @Description Create a category, optionally nested under a parent
// @Tags CMS - Categories
// @Accept json
// @Produce json
// @Param category body models.CategoryRequest true "Category details"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/categories [post]
func CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if req.ParentID != nil {
		var count int64
		if err := config.StoreGorm.WithContext(ctx).
			Model(&models.Category{}).
			Where("id = ?", *req.ParentID).
			Count(&count).Error; err != nil || count == 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid parent_id"))
			return
		}
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		Active:      true,
		ParentID:    req.ParentID,
	}
	if err := config.StoreGorm.WithContext(ctx).Create(&category).Error; err != nil {
		log.Printf("[categories] ❌ failed to create category: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create category"))
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Category created successfully", category))
}
