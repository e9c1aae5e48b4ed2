package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// Rule vocabulary
// ═══════════════════════════════════════════════════════════

// Match modes
const (
	MatchAll = "all"
	MatchAny = "any"
)

// Rule types
const (
	RuleTypePrice          = "price"
	RuleTypeCompareAtPrice = "compare_at_price"
	RuleTypeInventory      = "inventory"
	RuleTypeCategory       = "category"
	RuleTypeVendor         = "vendor"
	RuleTypeTag            = "tag"
	RuleTypeStatus         = "status"
)

// Rule operators. Contains/NotContains are accepted by validation and stored,
// but no evaluator branch implements them yet, so they never match a product.
const (
	OpEquals              = "equals"
	OpNotEquals           = "not_equals"
	OpGreaterThan         = "greater_than"
	OpLessThan            = "less_than"
	OpGreaterThanOrEquals = "greater_than_or_equals"
	OpLessThanOrEquals    = "less_than_or_equals"
	OpContains            = "contains"
	OpNotContains         = "not_contains"
)

// Collection sort orders
const (
	SortManual          = "manual"
	SortBestSelling     = "best_selling"
	SortAlphabeticalAsc = "alphabetical_asc"
	SortAlphabeticalDes = "alphabetical_desc"
	SortPriceAsc        = "price_asc"
	SortPriceDesc       = "price_desc"
	SortCreatedAsc      = "created_asc"
	SortCreatedDesc     = "created_desc"
)

// ═══════════════════════════════════════════════════════════
// GORM Models
// ═══════════════════════════════════════════════════════════

// Collection is a named grouping of products, either hand-curated or
// auto-populated from its rules.
type Collection struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null;index"`
	Slug        string    `json:"slug" gorm:"not null;uniqueIndex"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url,omitempty"`
	RuleMatch   string    `json:"rule_match" gorm:"type:varchar(10);not null;default:'all';check:rule_match IN ('all', 'any')"`
	SortOrder   string    `json:"sort_order" gorm:"type:varchar(30);not null;default:'manual'"`
	Active      bool      `json:"active" gorm:"default:true;index"`
	SEO         Seo       `json:"seo" gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Rules    []CollectionRule    `json:"rules,omitempty" gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	Products []CollectionProduct `json:"products,omitempty" gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Collection) TableName() string {
	return "collections"
}

// CollectionRule is one filter predicate belonging to a collection. Rules are
// replaced wholesale on every collection update, never diffed individually.
type CollectionRule struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CollectionID uuid.UUID `json:"collection_id" gorm:"type:uuid;not null;index"`
	RuleType     string    `json:"rule_type" gorm:"type:varchar(30);not null"`
	Operator     string    `json:"operator" gorm:"type:varchar(30);not null"`
	Value        string    `json:"value" gorm:"not null"`
	Position     int       `json:"position" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (r *CollectionRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (CollectionRule) TableName() string {
	return "collection_rules"
}

// CollectionProduct links a product into a collection. Manual memberships are
// curator-added and survive rule regeneration; automatic memberships are
// deleted and reinserted on every regeneration pass.
type CollectionProduct struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CollectionID uuid.UUID `json:"collection_id" gorm:"type:uuid;not null;uniqueIndex:idx_collection_product"`
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_collection_product"`
	Position     int       `json:"position" gorm:"not null;default:0"`
	IsManual     bool      `json:"is_manual" gorm:"not null;default:false;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
}

func (cp *CollectionProduct) BeforeCreate(tx *gorm.DB) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (CollectionProduct) TableName() string {
	return "collection_products"
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type CollectionRuleInput struct {
	RuleType string `json:"rule_type" binding:"required,oneof=price compare_at_price inventory category vendor tag status" example:"price"`
	Operator string `json:"operator" binding:"required,oneof=equals not_equals greater_than less_than greater_than_or_equals less_than_or_equals contains not_contains" example:"greater_than"`
	Value    string `json:"value" binding:"required" example:"100"`
}

type CollectionRequest struct {
	Name        string                `json:"name" binding:"required" example:"Summer Sale"`
	Description string                `json:"description" example:"Everything discounted for summer"`
	ImageURL    *string               `json:"image_url,omitempty"`
	RuleMatch   string                `json:"rule_match" binding:"omitempty,oneof=all any" example:"all"`
	SortOrder   string                `json:"sort_order" binding:"omitempty,oneof=manual best_selling alphabetical_asc alphabetical_desc price_asc price_desc created_asc created_desc" example:"manual"`
	Active      *bool                 `json:"active"`
	SEO         *Seo                  `json:"seo,omitempty"`
	Rules       []CollectionRuleInput `json:"rules" binding:"omitempty,dive"`
}

type UpdateCollectionRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	ImageURL    *string                `json:"image_url,omitempty"`
	RuleMatch   *string                `json:"rule_match" binding:"omitempty,oneof=all any"`
	SortOrder   *string                `json:"sort_order" binding:"omitempty,oneof=manual best_selling alphabetical_asc alphabetical_desc price_asc price_desc created_asc created_desc"`
	Active      *bool                  `json:"active"`
	SEO         *Seo                   `json:"seo,omitempty"`
	Rules       *[]CollectionRuleInput `json:"rules" binding:"omitempty,dive"`
}

type AddCollectionProductRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required" example:"018d1234-5678-7abc-def0-123456789abc"`
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

type CollectionListRow struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	RuleMatch    string    `json:"rule_match"`
	SortOrder    string    `json:"sort_order"`
	Active       bool      `json:"active"`
	RuleCount    int       `json:"rule_count"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CollectionMemberRow struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Position    int       `json:"position"`
	IsManual    bool      `json:"is_manual"`
}
