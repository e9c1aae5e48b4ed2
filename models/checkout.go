package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Abandoned-checkout recovery states
const (
	RecoveryStatusPending   = "pending"
	RecoveryStatusEmailSent = "email_sent"
	RecoveryStatusRecovered = "recovered"
	RecoveryStatusExpired   = "expired"
)

// Checkout is a snapshot of a cart heading to payment. Line items and the
// shipping address are frozen as JSONB at creation; the recovery columns drive
// the abandoned-checkout email batch.
type Checkout struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CartID          *uuid.UUID     `json:"cart_id,omitempty" gorm:"type:uuid;index"`
	CustomerID      *uuid.UUID     `json:"customer_id,omitempty" gorm:"type:uuid;index"`
	Email           string         `json:"email" gorm:"not null;index"`
	Items           datatypes.JSON `json:"items" gorm:"not null;default:'[]'"`
	ShippingAddress datatypes.JSON `json:"shipping_address" gorm:"default:'{}'"`
	Subtotal        float64        `json:"subtotal" gorm:"type:numeric(12,2);not null"`
	ShippingCost    float64        `json:"shipping_cost" gorm:"type:numeric(12,2);not null;default:0"`
	TotalAmount     float64        `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	RecoveryStatus  string         `json:"recovery_status" gorm:"type:varchar(20);not null;default:'pending';check:recovery_status IN ('pending', 'email_sent', 'recovered', 'expired');index"`
	RecoveryToken   string         `json:"recovery_token" gorm:"not null;uniqueIndex"`
	NextEmailAt     *time.Time     `json:"next_email_at,omitempty" gorm:"index"`
	EmailsSent      int            `json:"emails_sent" gorm:"not null;default:0"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *Checkout) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Checkout) TableName() string {
	return "checkouts"
}

// CheckoutEvent is an append-only funnel row, written through raw SQL on the
// pgx pool rather than the ORM. The model exists so migration creates it.
type CheckoutEvent struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CheckoutID uuid.UUID `json:"checkout_id" gorm:"type:uuid;not null;index"`
	Event      string    `json:"event" gorm:"type:varchar(20);not null"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null"`
}

func (CheckoutEvent) TableName() string {
	return "checkout_events"
}

// CheckoutLineItem is the shape serialized into Checkout.Items.
type CheckoutLineItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	VariantID   uuid.UUID `json:"variant_id"`
	ProductName string    `json:"product_name"`
	VariantName string    `json:"variant_name"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type ShippingAddressInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Zip       string `json:"zip" binding:"required"`
	Country   string `json:"country" binding:"required"`
	Phone     string `json:"phone"`
}

type StartCheckoutRequest struct {
	CartToken string `json:"cart_token" binding:"required"`
	Email     string `json:"email" binding:"required,email" example:"shopper@example.com"`
}

type UpdateCheckoutRequest struct {
	Email           *string               `json:"email" binding:"omitempty,email"`
	ShippingAddress *ShippingAddressInput `json:"shipping_address"`
}

type CompleteCheckoutRequest struct {
	CustomerName string `json:"customer_name" example:"Jane Doe"`
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

type CheckoutFunnelResponseItem struct {
	Started      int     `json:"started"`
	EmailsSent   int     `json:"emails_sent"`
	Recovered    int     `json:"recovered"`
	Expired      int     `json:"expired"`
	RecoveryRate float64 `json:"recovery_rate"`
}

type AbandonedCheckoutRow struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	TotalAmount    float64    `json:"total_amount"`
	RecoveryStatus string     `json:"recovery_status"`
	EmailsSent     int        `json:"emails_sent"`
	NextEmailAt    *time.Time `json:"next_email_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
