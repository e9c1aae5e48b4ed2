package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/services"
	"github.com/Lumera-Commerce/lumera-storefront-backend/utils"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main creates an admin account and, with --sample-data, a small demo catalog.
// Usage: go run cmd/seed/main.go [--sample-data]
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("LUMERA STORE - Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()
	config.MigrateDB()
	log.Println("✓ Connected to database")

	email, password, name := getAdminCredentials()

	var existingAdmin models.Admin
	if err := config.StoreGorm.Where("email = ?", email).First(&existingAdmin).Error; err == nil {
		fmt.Printf("❌ Admin with email '%s' already exists\n", email)
		os.Exit(1)
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("Database error: %v", err)
	}
	log.Printf("✓ Email '%s' is available", email)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	log.Println("✓ Password hashed securely")

	admin := models.Admin{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        email,
		Name:         name,
		PasswordHash: string(passwordHash),
		Role:         "admin",
	}
	if err := config.StoreGorm.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Println()
	fmt.Println("✅ Admin created")
	fmt.Printf("ID:    %s\n", admin.ID)
	fmt.Printf("Email: %s\n", admin.Email)

	for _, arg := range os.Args[1:] {
		if arg == "--sample-data" {
			seedSampleData()
		}
	}

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run main.go")
	fmt.Println("2. Login at POST /api/v1/admin/auth/login with email and password")
	fmt.Println()
}

// seedSampleData creates a demo catalog with a rule-driven collection.
func seedSampleData() {
	fmt.Println()
	fmt.Println("Seeding sample catalog...")

	vendor := models.Vendor{Name: "Acme Apparel", Slug: "acme-apparel"}
	if err := config.StoreGorm.Create(&vendor).Error; err != nil {
		log.Fatalf("Failed to seed vendor: %v", err)
	}

	category := models.Category{Name: "T-Shirts", Slug: "t-shirts", Active: true}
	if err := config.StoreGorm.Create(&category).Error; err != nil {
		log.Fatalf("Failed to seed category: %v", err)
	}

	samples := []struct {
		name      string
		price     float64
		compareAt *float64
		tags      []string
		stock     int
	}{
		{"Classic Tee", 19.99, ptr(29.99), []string{"cotton", "summer"}, 120},
		{"Premium Tee", 39.99, nil, []string{"cotton", "premium"}, 45},
		{"Limited Tee", 59.99, ptr(79.99), []string{"limited"}, 4},
	}

	for _, sample := range samples {
		product := models.Product{
			Name:           sample.name,
			Slug:           utils.Slugify(sample.name),
			Price:          sample.price,
			CompareAtPrice: sample.compareAt,
			CategoryID:     &category.ID,
			VendorID:       &vendor.ID,
			Status:         models.ProductStatusActive,
			Tags:           models.TagsList(sample.tags),
		}
		if err := config.StoreGorm.Create(&product).Error; err != nil {
			log.Fatalf("Failed to seed product: %v", err)
		}

		variant := models.ProductVariant{
			ProductID: product.ID,
			SKU:       product.Slug + "-default",
			Name:      "Default",
			IsDefault: true,
		}
		if err := config.StoreGorm.Create(&variant).Error; err != nil {
			log.Fatalf("Failed to seed variant: %v", err)
		}
		if err := config.StoreGorm.Create(&models.InventoryRecord{
			VariantID: variant.ID,
			Available: sample.stock,
		}).Error; err != nil {
			log.Fatalf("Failed to seed inventory: %v", err)
		}
		if err := config.StoreGorm.Model(&product).
			Update("default_variant_id", variant.ID).Error; err != nil {
			log.Fatalf("Failed to set default variant: %v", err)
		}
	}

	collection := models.Collection{
		Name:      "On Sale",
		Slug:      "on-sale",
		RuleMatch: models.MatchAll,
		SortOrder: models.SortManual,
		Active:    true,
	}
	if err := config.StoreGorm.Create(&collection).Error; err != nil {
		log.Fatalf("Failed to seed collection: %v", err)
	}
	rule := models.CollectionRule{
		CollectionID: collection.ID,
		RuleType:     models.RuleTypeCompareAtPrice,
		Operator:     models.OpGreaterThan,
		Value:        "0",
		Position:     0,
	}
	if err := config.StoreGorm.Create(&rule).Error; err != nil {
		log.Fatalf("Failed to seed collection rule: %v", err)
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()
	if err := services.RegenerateCollectionProducts(ctx, config.StoreGorm, collection.ID); err != nil {
		log.Fatalf("Failed to regenerate seeded collection: %v", err)
	}

	fmt.Println("✅ Sample catalog seeded")
}

func ptr(v float64) *float64 { return &v }

// getAdminCredentials prompts for admin details
func getAdminCredentials() (email, password, name string) {
	fmt.Println("Enter Admin Details:")
	fmt.Println()

	for {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
		if email != "" {
			break
		}
		fmt.Println("❌ Email cannot be empty")
	}

	for {
		fmt.Print("Name: ")
		fmt.Scanln(&name)
		if name != "" {
			break
		}
		fmt.Println("❌ Name cannot be empty")
	}

	for {
		fmt.Print("Password (min 8 characters): ")
		fmt.Scanln(&password)
		if len(password) >= 8 {
			break
		}
		fmt.Println("❌ Password must be at least 8 characters")
	}

	fmt.Println()
	return email, password, name
}
