package inventory_controller

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
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter mounts the adjust endpoint behind a stub that injects the
// admin id claim the way the auth middleware does (as a string).
func setupRouter(t *testing.T, adminID uuid.UUID) *gin.Engine {
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
		&models.InventoryAdjustment{},
	))

	previous := config.StoreGorm
	config.StoreGorm = db
	t.Cleanup(func() { config.StoreGorm = previous })

	r := gin.New()
	r.POST("/admin/inventory/:variantId/adjust", func(c *gin.Context) {
		c.Set("adminID", adminID.String())
		c.Next()
	}, AdjustInventory)
	return r
}

func seedVariant(t *testing.T, available int) models.ProductVariant {
	t.Helper()

	product := models.Product{
		Name:   "Classic Tee",
		Slug:   "classic-tee-" + strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-")),
		Price:  25,
		Status: models.ProductStatusActive,
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
	require.NoError(t, config.StoreGorm.Create(&models.InventoryRecord{
		VariantID: variant.ID,
		Available: available,
	}).Error)
	return variant
}

func adjust(t *testing.T, r *gin.Engine, variantID uuid.UUID, body models.AdjustInventoryRequest) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/admin/inventory/%s/adjust", variantID), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdjustInventoryRecordsActingAdmin(t *testing.T) {
	adminID := uuid.Must(uuid.NewV7())
	r := setupRouter(t, adminID)
	variant := seedVariant(t, 10)

	w := adjust(t, r, variant.ID, models.AdjustInventoryRequest{Delta: 5, Reason: "restock"})
	require.Equal(t, http.StatusOK, w.Code)

	var record models.InventoryRecord
	require.NoError(t, config.StoreGorm.Where("variant_id = ?", variant.ID).First(&record).Error)
	assert.Equal(t, 15, record.Available)

	var audit models.InventoryAdjustment
	require.NoError(t, config.StoreGorm.Where("variant_id = ?", variant.ID).First(&audit).Error)
	assert.Equal(t, 5, audit.Delta)
	assert.Equal(t, "restock", audit.Reason)
	require.NotNil(t, audit.AdminID, "audit row should record the acting admin")
	assert.Equal(t, adminID, *audit.AdminID)
}

func TestAdjustInventorySetToWinsAndAudits(t *testing.T) {
	adminID := uuid.Must(uuid.NewV7())
	r := setupRouter(t, adminID)
	variant := seedVariant(t, 10)

	setTo := 3
	w := adjust(t, r, variant.ID, models.AdjustInventoryRequest{Delta: 100, SetTo: &setTo, Reason: "recount"})
	require.Equal(t, http.StatusOK, w.Code)

	var audit models.InventoryAdjustment
	require.NoError(t, config.StoreGorm.Where("variant_id = ?", variant.ID).First(&audit).Error)
	assert.Equal(t, -7, audit.Delta)
	require.NotNil(t, audit.AdminID)
	assert.Equal(t, adminID, *audit.AdminID)
}

func TestAdjustInventoryRejectsNegativeResult(t *testing.T) {
	r := setupRouter(t, uuid.Must(uuid.NewV7()))
	variant := seedVariant(t, 2)

	w := adjust(t, r, variant.ID, models.AdjustInventoryRequest{Delta: -5, Reason: "oops"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, config.StoreGorm.Model(&models.InventoryAdjustment{}).Count(&count).Error)
	assert.Zero(t, count, "a rejected adjustment must not leave an audit row")
}
