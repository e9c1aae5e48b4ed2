package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRecord tracks available units for one variant. A product's total
// inventory is the sum of these across its variants.
type InventoryRecord struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	VariantID uuid.UUID `json:"variant_id" gorm:"type:uuid;not null;uniqueIndex"`
	Available int       `json:"available" gorm:"not null;default:0;check:available >= 0"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (r *InventoryRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// InventoryAdjustment is an audit row written for every manual stock change.
type InventoryAdjustment struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	VariantID uuid.UUID  `json:"variant_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID  `json:"product_id" gorm:"type:uuid;not null;index"`
	Delta     int        `json:"delta" gorm:"not null"`
	Reason    string     `json:"reason"`
	AdminID   *uuid.UUID `json:"admin_id,omitempty" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (a *InventoryAdjustment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (InventoryAdjustment) TableName() string {
	return "inventory_adjustments"
}

// ═══════════════════════════════════════════════════════════
// Request / Response Models
// ═══════════════════════════════════════════════════════════

// AdjustInventoryRequest applies a signed delta, or sets an absolute quantity
// when SetTo is provided (SetTo wins if both are present).
type AdjustInventoryRequest struct {
	Delta  int    `json:"delta" example:"-5"`
	SetTo  *int   `json:"set_to" binding:"omitempty,min=0" example:"120"`
	Reason string `json:"reason" example:"cycle count correction"`
}

type VariantInventoryRow struct {
	VariantID   uuid.UUID `json:"variant_id"`
	SKU         string    `json:"sku"`
	VariantName string    `json:"variant_name"`
	Available   int       `json:"available"`
	IsDefault   bool      `json:"is_default"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type LowStockRow struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	VariantID   uuid.UUID `json:"variant_id"`
	SKU         string    `json:"sku"`
	Available   int       `json:"available"`
}
