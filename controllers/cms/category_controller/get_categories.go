package category_controller

import (
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
)

// GetCategories godoc
// @Summary Get all categories
// @Description Retrieve the category tree with per-category product counts
// @Tags CMS - Categories
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/categories [get]
func GetCategories(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	categories := make([]models.Category, 0)
	if err := config.StoreGorm.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch categories"))
		return
	}

	rows := make([]models.CategoryWithProducts, 0, len(categories))
	for _, category := range categories {
		var productCount int64
		config.StoreGorm.WithContext(ctx).
			Model(&models.Product{}).
			Where("category_id = ?", category.ID).
			Count(&productCount)

		rows = append(rows, models.CategoryWithProducts{
			ID:          category.ID,
			Name:        category.Name,
			Slug:        category.Slug,
			Description: category.Description,
			Active:      category.Active,
			ParentID:    category.ParentID,
			Products:    int(productCount),
			CreatedAt:   category.CreatedAt,
			UpdatedAt:   category.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", rows))
}
