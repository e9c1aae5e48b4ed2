package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is a completed checkout.
type Order struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber  string     `json:"order_number" gorm:"not null;uniqueIndex"`
	CustomerID   uuid.UUID  `json:"customer_id" gorm:"type:uuid;not null;index"`
	CheckoutID   *uuid.UUID `json:"checkout_id,omitempty" gorm:"type:uuid;index"`
	Subtotal     float64    `json:"subtotal" gorm:"type:numeric(12,2);not null"`
	ShippingCost float64    `json:"shipping_cost" gorm:"type:numeric(12,2);not null;default:0"`
	TotalAmount  float64    `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status       string     `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending', 'processing', 'shipped', 'delivered', 'cancelled');index"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	ShippedAt    *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`

	Items    []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Customer *Customer   `json:"customer,omitempty" gorm:"foreignKey:CustomerID;references:ID"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order, denormalized so the invoice survives
// later product edits.
type OrderItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	VariantID   uuid.UUID `json:"variant_id" gorm:"type:uuid;not null"`
	ProductName string    `json:"product_name" gorm:"not null"`
	VariantName string    `json:"variant_name"`
	Price       float64   `json:"price" gorm:"type:numeric(12,2);not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Subtotal    float64   `json:"subtotal" gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled" example:"shipped"`
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

type OrderListRow struct {
	ID            uuid.UUID `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerID    uuid.UUID `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	ItemCount     int       `json:"item_count"`
	TotalQuantity int       `json:"total_quantity"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type OrderStatsResponseItem struct {
	TotalOrders     int     `json:"total_orders"`
	PendingOrders   int     `json:"pending_orders"`
	ShippedOrders   int     `json:"shipped_orders"`
	DeliveredOrders int     `json:"delivered_orders"`
	CancelledOrders int     `json:"cancelled_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageOrder    float64 `json:"average_order"`
}
