package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a saved shipping address belonging to a customer. Checkouts keep
// their own frozen copy, so edits here never rewrite order history.
type Address struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `json:"customer_id" gorm:"type:uuid;not null;index"`
	FirstName  string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName   string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Street     string    `json:"street" gorm:"type:varchar(255);not null"`
	City       string    `json:"city" gorm:"type:varchar(100);not null"`
	State      string    `json:"state" gorm:"type:varchar(100)"`
	Zip        string    `json:"zip" gorm:"type:varchar(20);not null"`
	Country    string    `json:"country" gorm:"type:varchar(100);not null"`
	Phone      *string   `json:"phone,omitempty" gorm:"type:varchar(20)"`
	IsDefault  bool      `json:"is_default" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Address) TableName() string {
	return "addresses"
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}
