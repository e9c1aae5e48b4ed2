package config

import (
	"log"

	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
)

// MigrateDB runs GORM auto-migration for every table the service owns.
func MigrateDB() {
	err := StoreGorm.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Vendor{},
		&models.Product{},
		&models.ProductVariant{},
		&models.InventoryRecord{},
		&models.InventoryAdjustment{},
		&models.Collection{},
		&models.CollectionRule{},
		&models.CollectionProduct{},
		&models.Customer{},
		&models.Address{},
		&models.Cart{},
		&models.CartItem{},
		&models.Checkout{},
		&models.CheckoutEvent{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("❌ Auto-migration failed: %v", err)
	}
	log.Println("✅ Database schema migrated")
}
