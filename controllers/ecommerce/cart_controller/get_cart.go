package cart_controller

import (
	"errors"
	"net/http"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// findOrCreateCart loads the cart for a client token, creating an empty one on
// first sight.
func findOrCreateCart(ctx *gin.Context, token string) (*models.Cart, error) {
	dbCtx, cancel := config.WithTimeout()
	defer cancel()

	var cart models.Cart
	err := config.StoreGorm.WithContext(dbCtx).
		Preload("Items").
		Where("token = ?", token).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{Token: token}
	if err := config.StoreGorm.WithContext(dbCtx).Create(&cart).Error; err != nil {
		return nil, err
	}
	cart.Items = make([]models.CartItem, 0)
	return &cart, nil
}

func cartResponse(cart *models.Cart) models.CartResponse {
	resp := models.CartResponse{
		ID:    cart.ID,
		Token: cart.Token,
		Items: cart.Items,
	}
	if resp.Items == nil {
		resp.Items = make([]models.CartItem, 0)
	}
	for _, item := range cart.Items {
		resp.ItemCount += item.Quantity
		resp.Subtotal += item.UnitPrice * float64(item.Quantity)
	}
	return resp
}

// GetCart godoc
// @Summary Get a cart
// @Description Retrieve the cart for a client token, creating it if absent
// @Tags store
// @Produce json
// @Param token path string true "Cart token"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/store/cart/{token} [get]
func GetCart(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Cart token is required"))
		return
	}

	cart, err := findOrCreateCart(c, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load cart"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart fetched successfully", cartResponse(cart)))
}
