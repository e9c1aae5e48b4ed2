package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a product grouping used for navigation and for category rules.
type Category struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"not null;uniqueIndex"`
	Description string     `json:"description"`
	Active      bool       `json:"active" gorm:"default:true"`
	ParentID    *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Parent   *Category   `json:"parent,omitempty" gorm:"foreignKey:ParentID;references:ID"`
	Children []*Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

// BeforeCreate hook - runs automatically before creating a record
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Category) TableName() string {
	return "categories"
}

// CategoryRequest is used when creating a category or subcategory
type CategoryRequest struct {
	Name        string     `json:"name" binding:"required" example:"Electronics"`
	Description string     `json:"description" example:"Devices and gadgets"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty" example:"null"`
}

// UpdateCategoryRequest is used when updating a category
type UpdateCategoryRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Active      *bool      `json:"active"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}

// CategoryWithProducts extends Category with product count for admin lists
type CategoryWithProducts struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Active      bool       `json:"active"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Products    int        `json:"products"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
