package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// Product statuses
// ═══════════════════════════════════════════════════════════

const (
	ProductStatusDraft    = "draft"
	ProductStatusActive   = "active"
	ProductStatusArchived = "archived"
)

// ═══════════════════════════════════════════════════════════
// JSONB Type Definitions
// ═══════════════════════════════════════════════════════════

type Seo struct {
	SEOTitle       string `json:"seo_title" example:"Best Sample Product"`
	SEODescription string `json:"seo_description" example:"This is the best sample product."`
}

// TagsList is stored as a JSONB array of tag strings. Tag rule values compare
// against these entries directly.
type TagsList []string

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

type Product struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name             string     `json:"name" gorm:"not null;index"`
	Slug             string     `json:"slug" gorm:"not null;uniqueIndex"`
	Description      string     `json:"description"`
	Price            float64    `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	CompareAtPrice   *float64   `json:"compare_at_price,omitempty" gorm:"type:numeric(12,2)"`
	CategoryID       *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid;index"`
	Category         *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	VendorID         *uuid.UUID `json:"vendor_id,omitempty" gorm:"type:uuid;index"`
	Vendor           *Vendor    `json:"vendor,omitempty" gorm:"foreignKey:VendorID;references:ID"`
	Status           string     `json:"status" gorm:"type:varchar(20);not null;default:'draft';check:status IN ('draft', 'active', 'archived');index"`
	Tags             TagsList   `json:"tags" gorm:"type:jsonb;not null;default:'[]'"`
	DefaultVariantID *uuid.UUID `json:"default_variant_id,omitempty" gorm:"type:uuid"`
	SEO              Seo        `json:"seo" gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Variants []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// ProductVariant is a purchasable variation of a product. Every product gets a
// default variant at creation so inventory always has a home.
type ProductVariant struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID     uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	SKU           string    `json:"sku" gorm:"not null;uniqueIndex"`
	Name          string    `json:"name" gorm:"not null"`
	PriceOverride *float64  `json:"price_override,omitempty" gorm:"type:numeric(12,2)"`
	IsDefault     bool      `json:"is_default" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Inventory *InventoryRecord `json:"inventory,omitempty" gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type VariantInput struct {
	SKU           string   `json:"sku" binding:"required" example:"TSHIRT-S-BLK"`
	Name          string   `json:"name" binding:"required" example:"Small / Black"`
	PriceOverride *float64 `json:"price_override" binding:"omitempty,min=0"`
	Available     int      `json:"available" binding:"min=0" example:"100"`
	IsDefault     bool     `json:"is_default"`
}

type ProductRequest struct {
	Name           string         `json:"name" binding:"required" example:"Sample Product"`
	Description    string         `json:"description" example:"This is a sample product"`
	Price          float64        `json:"price" binding:"required,min=0" example:"99.99"`
	CompareAtPrice *float64       `json:"compare_at_price" binding:"omitempty,min=0" example:"129.99"`
	CategoryID     *uuid.UUID     `json:"category_id"`
	VendorID       *uuid.UUID     `json:"vendor_id"`
	Status         string         `json:"status" binding:"omitempty,oneof=draft active archived" example:"draft"`
	Tags           []string       `json:"tags" example:"['cotton', 'summer']"`
	Variants       []VariantInput `json:"variants" binding:"omitempty,dive"`
	SEO            *Seo           `json:"seo"`
}

type UpdateProductRequest struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	Price          *float64   `json:"price" binding:"omitempty,min=0"`
	CompareAtPrice *float64   `json:"compare_at_price" binding:"omitempty,min=0"`
	CategoryID     *uuid.UUID `json:"category_id"`
	VendorID       *uuid.UUID `json:"vendor_id"`
	Status         *string    `json:"status" binding:"omitempty,oneof=draft active archived"`
	Tags           *[]string  `json:"tags"`
	SEO            *Seo       `json:"seo"`
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

type ProductListRow struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Price          float64   `json:"price"`
	CompareAtPrice *float64  `json:"compare_at_price,omitempty"`
	CategoryName   *string   `json:"category_name,omitempty"`
	VendorName     *string   `json:"vendor_name,omitempty"`
	Status         string    `json:"status"`
	Tags           []string  `json:"tags"`
	TotalInventory int       `json:"total_inventory"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ProductStatsResponseItem struct {
	TotalProducts    int     `json:"total_products"`
	ActiveProducts   int     `json:"active_products"`
	DraftProducts    int     `json:"draft_products"`
	ArchivedProducts int     `json:"archived_products"`
	PercentageActive float64 `json:"percentage_active"`
	AveragePrice     float64 `json:"average_price"`
	TotalInventory   int     `json:"total_inventory"`
	LowStockProducts int     `json:"low_stock_products"`
}

// ═══════════════════════════════════════════════════════════
// JSONB Scanner/Valuer for GORM (Custom types)
// ═══════════════════════════════════════════════════════════

func jsonColumnBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported JSON column source type")
	}
}

// TagsList methods
func (t *TagsList) Scan(value interface{}) error {
	if value == nil {
		*t = make(TagsList, 0)
		return nil
	}
	bytes, err := jsonColumnBytes(value)
	if err != nil {
		return errors.New("failed to scan TagsList")
	}
	return json.Unmarshal(bytes, t)
}

func (t TagsList) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(t)
}

// Seo methods
func (s *Seo) Scan(value interface{}) error {
	if value == nil {
		*s = Seo{}
		return nil
	}
	bytes, err := jsonColumnBytes(value)
	if err != nil {
		return errors.New("failed to scan Seo")
	}
	return json.Unmarshal(bytes, s)
}

func (s Seo) Value() (driver.Value, error) {
	return json.Marshal(s)
}
