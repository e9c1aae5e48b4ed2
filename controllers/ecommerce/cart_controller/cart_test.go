package cart_controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter points the package's DB global at an in-memory SQLite database
// and mounts the cart routes the storefront exposes.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.InventoryRecord{},
		&models.Cart{},
		&models.CartItem{},
	))

	previous := config.StoreGorm
	config.StoreGorm = db
	t.Cleanup(func() { config.StoreGorm = previous })

	r := gin.New()
	r.GET("/store/cart/:token", GetCart)
	r.POST("/store/cart/:token/items", AddCartItem)
	r.PATCH("/store/cart/:token/items/:itemId", UpdateCartItem)
	r.DELETE("/store/cart/:token/items/:itemId", RemoveCartItem)
	r.DELETE("/store/cart/:token/items", ClearCart)
	return r
}

func seedVariant(t *testing.T, price float64, status string) models.ProductVariant {
	t.Helper()

	product := models.Product{
		Name:   "Classic Tee",
		Slug:   fmt.Sprintf("classic-tee-%s", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-"))),
		Price:  price,
		Status: status,
		Tags:   models.TagsList{},
	}
	require.NoError(t, config.StoreGorm.Create(&product).Error)

	variant := models.ProductVariant{
		ProductID: product.ID,
		SKU:       product.Slug + "-default",
		Name:      "Default",
		IsDefault: true,
	}
	require.NoError(t, config.StoreGorm.Create(&variant).Error)
	return variant
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, models.ApiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func decodeCart(t *testing.T, envelope models.ApiResponse) models.CartResponse {
	t.Helper()

	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var cart models.CartResponse
	require.NoError(t, json.Unmarshal(raw, &cart))
	return cart
}

func TestGetCartCreatesOnFirstTouch(t *testing.T) {
	r := setupRouter(t)

	w, envelope := doJSON(t, r, http.MethodGet, "/store/cart/fresh-token", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cart := decodeCart(t, envelope)
	assert.Equal(t, "fresh-token", cart.Token)
	assert.Zero(t, cart.ItemCount)
	assert.Zero(t, cart.Subtotal)
}

func TestAddCartItemMergesQuantities(t *testing.T) {
	r := setupRouter(t)
	variant := seedVariant(t, 25, models.ProductStatusActive)

	body := models.AddCartItemRequest{VariantID: variant.ID, Quantity: 2}
	w, envelope := doJSON(t, r, http.MethodPost, "/store/cart/shopper/items", body)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decodeCart(t, envelope)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, 50.0, cart.Subtotal)

	// same variant again merges into the existing line
	body.Quantity = 3
	w, envelope = doJSON(t, r, http.MethodPost, "/store/cart/shopper/items", body)
	require.Equal(t, http.StatusOK, w.Code)
	cart = decodeCart(t, envelope)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 125.0, cart.Subtotal)
}

func TestAddCartItemRejectsInactiveProduct(t *testing.T) {
	r := setupRouter(t)
	variant := seedVariant(t, 25, models.ProductStatusDraft)

	w, envelope := doJSON(t, r, http.MethodPost, "/store/cart/shopper/items",
		models.AddCartItemRequest{VariantID: variant.ID, Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, envelope.Error)
}

func TestUpdateCartItemZeroDeletesLine(t *testing.T) {
	r := setupRouter(t)
	variant := seedVariant(t, 10, models.ProductStatusActive)

	_, envelope := doJSON(t, r, http.MethodPost, "/store/cart/shopper/items",
		models.AddCartItemRequest{VariantID: variant.ID, Quantity: 2})
	cart := decodeCart(t, envelope)
	require.Len(t, cart.Items, 1)
	itemID := cart.Items[0].ID

	w, envelope := doJSON(t, r,
		http.MethodPatch, fmt.Sprintf("/store/cart/shopper/items/%s", itemID),
		models.UpdateCartItemRequest{Quantity: 0})
	require.Equal(t, http.StatusOK, w.Code)
	cart = decodeCart(t, envelope)
	assert.Empty(t, cart.Items)
}

func TestClearCart(t *testing.T) {
	r := setupRouter(t)
	variant := seedVariant(t, 10, models.ProductStatusActive)

	doJSON(t, r, http.MethodPost, "/store/cart/shopper/items",
		models.AddCartItemRequest{VariantID: variant.ID, Quantity: 2})

	w, envelope := doJSON(t, r, http.MethodDelete, "/store/cart/shopper/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decodeCart(t, envelope)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.ItemCount)
}
