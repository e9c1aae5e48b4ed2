package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database unique to the calling test and
// migrates the models the service layer touches.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	err = db.AutoMigrate(
		&models.Category{},
		&models.Vendor{},
		&models.Product{},
		&models.ProductVariant{},
		&models.InventoryRecord{},
		&models.Collection{},
		&models.CollectionRule{},
		&models.CollectionProduct{},
		&models.Customer{},
		&models.Cart{},
		&models.CartItem{},
		&models.Checkout{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err)
	return db
}

// seedProduct creates an active product with one default variant holding the
// given stock. Extra fields are set through the mutate callback before insert.
func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, available int, mutate func(*models.Product)) models.Product {
	t.Helper()

	product := models.Product{
		Name:   name,
		Slug:   strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Price:  price,
		Status: models.ProductStatusActive,
		Tags:   models.TagsList{},
	}
	if mutate != nil {
		mutate(&product)
	}
	require.NoError(t, db.Create(&product).Error)

	variant := models.ProductVariant{
		ProductID: product.ID,
		SKU:       product.Slug + "-default",
		Name:      "Default",
		IsDefault: true,
	}
	require.NoError(t, db.Create(&variant).Error)
	require.NoError(t, db.Create(&models.InventoryRecord{
		VariantID: variant.ID,
		Available: available,
	}).Error)
	require.NoError(t, db.Model(&product).Update("default_variant_id", variant.ID).Error)

	product.DefaultVariantID = &variant.ID
	product.Variants = []models.ProductVariant{variant}
	return product
}

func seedCollection(t *testing.T, db *gorm.DB, name, ruleMatch string, rules []models.CollectionRule) models.Collection {
	t.Helper()

	collection := models.Collection{
		Name:      name,
		Slug:      strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		RuleMatch: ruleMatch,
		SortOrder: models.SortManual,
		Active:    true,
	}
	require.NoError(t, db.Create(&collection).Error)

	for i := range rules {
		rules[i].CollectionID = collection.ID
		rules[i].Position = i
		require.NoError(t, db.Create(&rules[i]).Error)
	}
	return collection
}

func memberIDs(t *testing.T, db *gorm.DB, collectionID uuid.UUID) []models.CollectionProduct {
	t.Helper()

	var members []models.CollectionProduct
	require.NoError(t, db.
		Where("collection_id = ?", collectionID).
		Order("position ASC").
		Find(&members).Error)
	return members
}

func ptrFloat(v float64) *float64 { return &v }
