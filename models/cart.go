package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is a shopper's working bag. Anonymous shoppers are keyed by a client
// token; signed-in customers by customer id.
type Cart struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty" gorm:"type:uuid;index"`
	Token      string     `json:"token" gorm:"not null;uniqueIndex"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem captures the unit price at the moment it was added so a later
// price change does not silently reprice the bag.
type CartItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CartID      uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_variant"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	VariantID   uuid.UUID `json:"variant_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_variant"`
	ProductName string    `json:"product_name" gorm:"not null"`
	VariantName string    `json:"variant_name"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:numeric(12,2);not null"`
	Quantity    int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	AddedAt     time.Time `json:"added_at" gorm:"autoCreateTime"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type AddCartItemRequest struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1" example:"1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0" example:"2"`
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

type CartResponse struct {
	ID        uuid.UUID  `json:"id"`
	Token     string     `json:"token"`
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Subtotal  float64    `json:"subtotal"`
}
