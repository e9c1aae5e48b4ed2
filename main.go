// @title Lumera Storefront API
// @version 1.0
// @description Lumera storefront and back-office API documentation
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	_ "github.com/Lumera-Commerce/lumera-storefront-backend/docs"
	"github.com/Lumera-Commerce/lumera-storefront-backend/middleware"
	"github.com/Lumera-Commerce/lumera-storefront-backend/routes/cms_routes"
	"github.com/Lumera-Commerce/lumera-storefront-backend/routes/ecommerce_routes"
	"github.com/Lumera-Commerce/lumera-storefront-backend/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	defer config.CloseDB()
	config.MigrateDB()

	// Redis connection
	config.ConnectRedis()

	// ✅ Initialize JWT Service for Admin Auth
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}
	if err := services.InitJWTService(jwtSecret); err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	log.Println("✅ JWT Service initialized")

	// ✅ Start the abandoned-checkout recovery poller
	recoveryCtx, stopRecovery := context.WithCancel(context.Background())
	defer stopRecovery()
	recovery := services.NewRecoveryService(
		config.StoreGorm,
		services.NewResendClient(),
		services.DefaultRecoverySchedule,
	)
	recovery.Start(recoveryCtx)
	log.Println("✅ Recovery poller started")

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"}, // invoice downloads
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	// Register API routes
	api := router.Group("/api/v1")

	// Admin back office (at /api/v1/admin prefix)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RateLimiter(100, time.Minute))
	cms_routes.SetupAuthRoutes(adminGroup)
	cms_routes.SetupCollectionRoutes(adminGroup)
	cms_routes.SetupProductRoutes(adminGroup)
	cms_routes.SetupCategoryRoutes(adminGroup)
	cms_routes.SetupVendorRoutes(adminGroup)
	cms_routes.SetupOrderRoutes(adminGroup)
	cms_routes.SetupCustomerRoutes(adminGroup)
	cms_routes.SetupInventoryRoutes(adminGroup)
	cms_routes.SetupCheckoutRoutes(adminGroup)
	log.Println("✅ Admin routes registered")

	// Public storefront (no rate limiter)
	ecommerce_routes.SetupStorefrontRoutes(api)

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	fmt.Println("🚀 Server is running on http://localhost:8081")
	router.Run(":8081")
}
