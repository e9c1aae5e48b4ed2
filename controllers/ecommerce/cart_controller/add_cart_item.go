package cart_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddCartItem godoc
// @Summary Add an item to a cart
// @Description Add a variant to the cart; quantities merge when the variant is already present
// @Tags store
// @Accept json
// @Produce json
// @Param token path string true "Cart token"
// @Param item body models.AddCartItemRequest true "Item to add"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/cart/{token}/items [post]
func AddCartItem(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Cart token is required"))
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var variant models.ProductVariant
	if err := config.StoreGorm.WithContext(ctx).
		First(&variant, "id = ?", req.VariantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Variant not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	var product models.Product
	if err := config.StoreGorm.WithContext(ctx).
		First(&product, "id = ?", variant.ProductID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}
	if product.Status != models.ProductStatusActive {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Product is not available"))
		return
	}

	cart, err := findOrCreateCart(c, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load cart"))
		return
	}

	unitPrice := product.Price
	if variant.PriceOverride != nil {
		unitPrice = *variant.PriceOverride
	}

	var existing models.CartItem
	err = config.StoreGorm.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cart.ID, req.VariantID).
		First(&existing).Error
	switch {
	case err == nil:
		if err := config.StoreGorm.WithContext(ctx).
			Model(&existing).
			Update("quantity", existing.Quantity+req.Quantity).Error; err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart item"))
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := models.CartItem{
			CartID:      cart.ID,
			ProductID:   product.ID,
			VariantID:   variant.ID,
			ProductName: product.Name,
			VariantName: variant.Name,
			UnitPrice:   unitPrice,
			Quantity:    req.Quantity,
		}
		if err := config.StoreGorm.WithContext(ctx).Create(&item).Error; err != nil {
			log.Printf("[cart] ❌ failed to add item to cart %s: %v", cart.ID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to add cart item"))
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Database error"))
		return
	}

	if err := config.StoreGorm.WithContext(ctx).
		Preload("Items").
		First(cart, "id = ?", cart.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to reload cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item added to cart", cartResponse(cart)))
}
