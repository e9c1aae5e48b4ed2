package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a shopper. Created explicitly via admin action or implicitly
// the first time an email completes a checkout.
type Customer struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Customer) TableName() string {
	return "customers"
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

type CustomerListRow struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Orders     int       `json:"orders"`
	TotalSpent float64   `json:"total_spent"`
	JoinDate   time.Time `json:"join_date"`
}

type CustomerDetail struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         *string    `json:"phone"`
	Orders        int        `json:"orders"`
	TotalSpent    float64    `json:"total_spent"`
	AvgOrderValue float64    `json:"avg_order_value"`
	LastOrderDate *time.Time `json:"last_order_date,omitempty"`
	JoinDate      time.Time  `json:"join_date"`
	Addresses     []Address  `json:"addresses,omitempty"`
}

type CustomerStatsResponseItem struct {
	TotalCustomers      int     `json:"total_customers"`
	CustomersWithOrders int     `json:"customers_with_orders"`
	NewThisMonth        int     `json:"new_this_month"`
	AvgLifetimeSpend    float64 `json:"avg_lifetime_spend"`
}
