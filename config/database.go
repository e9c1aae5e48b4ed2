package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// StoreDB is the raw pgx pool, used for hand-written SQL (event logging,
	// aggregate stats).
	StoreDB *pgxpool.Pool

	// StoreGorm is the ORM handle everything else goes through.
	StoreGorm *gorm.DB
)

func InitDB() {
	initPgx()
	initGORM()
}

func initPgx() {
	storeURL := os.Getenv("STORE_DB_URL")
	if storeURL == "" {
		// fallback to local
		storeURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/lumera_store?sslmode=disable",
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
		)
		log.Println("⚠️ STORE_DB_URL not set, using local default")
	}

	var err error
	StoreDB, err = pgxpool.New(context.Background(), storeURL)
	if err != nil {
		log.Fatalf("❌ Unable to connect to store database: %v", err)
	}

	if err = StoreDB.Ping(context.Background()); err != nil {
		log.Fatalf("❌ Store database ping failed: %v", err)
	}

	log.Println("✅ Store database connected (pgx)")
}

func initGORM() {
	gormLogger := logger.Default.LogMode(logger.Info)
	if os.Getenv("APP_ENV") == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var storeDSN string
	if os.Getenv("STORE_DB_URL") != "" {
		storeDSN = os.Getenv("STORE_DB_URL")
	} else {
		storeDSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=lumera_store port=%s sslmode=disable TimeZone=UTC",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_PORT", "5432"),
		)
		log.Println("⚠️ STORE_DB_URL not set, using local GORM default")
	}

	var err error
	StoreGorm, err = gorm.Open(postgres.Open(storeDSN), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to store database with GORM: %v", err)
	}
	if sqlDB, err := StoreGorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Println("✅ Store database connected (GORM)")
}

func CloseDB() {
	if StoreDB != nil {
		StoreDB.Close()
		log.Println("✅ Store database connection closed (pgx)")
	}

	if StoreGorm != nil {
		sqlDB, _ := StoreGorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			log.Println("✅ Store database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout for request-scoped DB work
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
