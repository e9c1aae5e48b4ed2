package product_controller

import (
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeleteProduct godoc
// @Summary Delete a product
// @Description Delete a product along with its variants, inventory and collection memberships
// @Tags CMS - Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/admin/products/{id} [delete]
func DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	result := config.StoreGorm.WithContext(ctx).Delete(&models.Product{}, "id = ?", productID)
	if result.Error != nil {
		log.Printf("[products] ❌ failed to delete product %s: %v", productID, result.Error)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete product"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}

	// memberships cascade with the product; collections shrink on their own
	log.Printf("[products] ✅ deleted product %s", productID)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product deleted successfully", nil))
}
