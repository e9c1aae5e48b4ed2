package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ════════════════════════════════════════════════════════════
// Per-collection locking
// ════════════════════════════════════════════════════════════

// Regeneration is delete-all-then-insert, so two concurrent runs (or a run
// racing a manual add) would corrupt the membership list. Every mutating
// operation on a collection's membership takes this keyed mutex.
var collectionLocks sync.Map // collection id -> *sync.Mutex

func lockCollection(id uuid.UUID) *sync.Mutex {
	mu, _ := collectionLocks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ════════════════════════════════════════════════════════════
// Rule evaluation (pure)
// ════════════════════════════════════════════════════════════

// productSnapshot is the read-only view of a product the evaluator works on.
type productSnapshot struct {
	ID             uuid.UUID
	Price          float64
	CompareAtPrice *float64
	CategoryID     *uuid.UUID
	VendorID       *uuid.UUID
	Status         string
	Tags           []string
	TotalInventory int
}

// ruleNumber makes "unparseable rule value" an explicit state instead of a
// NaN-compares-false accident. An invalid number fails every comparison.
type ruleNumber struct {
	value float64
	valid bool
}

func parseRuleNumber(s string) ruleNumber {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ruleNumber{}
	}
	return ruleNumber{value: f, valid: true}
}

func compareNumeric(operator string, actual float64, want ruleNumber) bool {
	if !want.valid {
		return false
	}
	switch operator {
	case models.OpEquals:
		return actual == want.value
	case models.OpNotEquals:
		return actual != want.value
	case models.OpGreaterThan:
		return actual > want.value
	case models.OpLessThan:
		return actual < want.value
	case models.OpGreaterThanOrEquals:
		return actual >= want.value
	case models.OpLessThanOrEquals:
		return actual <= want.value
	default:
		return false
	}
}

// evaluateRule applies one rule to one product. Unknown rule types and
// operators a type doesn't support evaluate to false rather than erroring, so
// a misconfigured rule narrows a collection instead of breaking regeneration.
func evaluateRule(rule models.CollectionRule, p productSnapshot) bool {
	switch rule.RuleType {
	case models.RuleTypePrice:
		return compareNumeric(rule.Operator, p.Price, parseRuleNumber(rule.Value))

	case models.RuleTypeCompareAtPrice:
		// No compare-at price means no match, even for not_equals.
		if p.CompareAtPrice == nil {
			return false
		}
		return compareNumeric(rule.Operator, *p.CompareAtPrice, parseRuleNumber(rule.Value))

	case models.RuleTypeInventory:
		return compareNumeric(rule.Operator, float64(p.TotalInventory), parseRuleNumber(rule.Value))

	case models.RuleTypeCategory:
		if p.CategoryID == nil {
			return rule.Operator == models.OpNotEquals
		}
		switch rule.Operator {
		case models.OpEquals:
			return p.CategoryID.String() == rule.Value
		case models.OpNotEquals:
			return p.CategoryID.String() != rule.Value
		default:
			return false
		}

	case models.RuleTypeVendor:
		if p.VendorID == nil {
			return rule.Operator == models.OpNotEquals
		}
		switch rule.Operator {
		case models.OpEquals:
			return p.VendorID.String() == rule.Value
		case models.OpNotEquals:
			return p.VendorID.String() != rule.Value
		default:
			return false
		}

	case models.RuleTypeTag:
		found := false
		for _, tag := range p.Tags {
			if tag == rule.Value {
				found = true
				break
			}
		}
		switch rule.Operator {
		case models.OpEquals:
			return found
		case models.OpNotEquals:
			return !found
		default:
			return false
		}

	case models.RuleTypeStatus:
		switch rule.Operator {
		case models.OpEquals:
			return p.Status == rule.Value
		case models.OpNotEquals:
			return p.Status != rule.Value
		default:
			return false
		}

	default:
		return false
	}
}

// productMatches combines per-rule results under the collection's match mode.
// Results combine commutatively, so rule order never affects the outcome.
func productMatches(rules []models.CollectionRule, ruleMatch string, p productSnapshot) bool {
	if ruleMatch == models.MatchAny {
		for _, rule := range rules {
			if evaluateRule(rule, p) {
				return true
			}
		}
		return false
	}

	// "all" is the default mode
	for _, rule := range rules {
		if !evaluateRule(rule, p) {
			return false
		}
	}
	return true
}

// ════════════════════════════════════════════════════════════
// Snapshot loading
// ════════════════════════════════════════════════════════════

// loadActiveProductSnapshots reads every active product with its tags and
// computed total inventory. Total inventory is the sum of available units
// across the product's variants; a product with no variant rows falls back to
// its designated default variant's inventory record, and to 0 if none exists.
func loadActiveProductSnapshots(ctx context.Context, db *gorm.DB) ([]productSnapshot, error) {
	var products []models.Product
	if err := db.WithContext(ctx).
		Where("status = ?", models.ProductStatusActive).
		Preload("Variants").
		Preload("Variants.Inventory").
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load active products: %w", err)
	}

	snapshots := make([]productSnapshot, 0, len(products))
	for _, product := range products {
		total := 0
		if len(product.Variants) > 0 {
			for _, variant := range product.Variants {
				if variant.Inventory != nil {
					total += variant.Inventory.Available
				}
			}
		} else if product.DefaultVariantID != nil {
			var record models.InventoryRecord
			err := db.WithContext(ctx).
				Where("variant_id = ?", *product.DefaultVariantID).
				First(&record).Error
			switch {
			case err == nil:
				total = record.Available
			case err == gorm.ErrRecordNotFound:
				total = 0
			default:
				return nil, fmt.Errorf("failed to load default variant inventory: %w", err)
			}
		}

		snapshots = append(snapshots, productSnapshot{
			ID:             product.ID,
			Price:          product.Price,
			CompareAtPrice: product.CompareAtPrice,
			CategoryID:     product.CategoryID,
			VendorID:       product.VendorID,
			Status:         product.Status,
			Tags:           product.Tags,
			TotalInventory: total,
		})
	}
	return snapshots, nil
}

// ════════════════════════════════════════════════════════════
// Regeneration
// ════════════════════════════════════════════════════════════

// RegenerateCollectionProducts re-derives a collection's automatic
// memberships from its current rules: load rules, evaluate every active
// product, then replace all automatic memberships in one transaction. Manual
// memberships are never touched except to offset positions, and a product
// that is both manual and qualifying stays manual only.
func RegenerateCollectionProducts(ctx context.Context, db *gorm.DB, collectionID uuid.UUID) error {
	mu := lockCollection(collectionID)
	mu.Lock()
	defer mu.Unlock()

	// Load the collection and its ordered rules
	var collection models.Collection
	if err := db.WithContext(ctx).First(&collection, "id = ?", collectionID).Error; err != nil {
		return fmt.Errorf("collection %s: %w", collectionID, err)
	}

	var rules []models.CollectionRule
	if err := db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("position ASC").
		Find(&rules).Error; err != nil {
		return fmt.Errorf("failed to load rules for collection %s: %w", collectionID, err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Manual memberships survive regeneration; record their ids and the
		// highest manual position so automatic entries slot in after them.
		var manual []models.CollectionProduct
		if err := tx.Where("collection_id = ? AND is_manual = ?", collectionID, true).
			Find(&manual).Error; err != nil {
			return fmt.Errorf("failed to load manual memberships: %w", err)
		}

		manualIDs := make(map[uuid.UUID]bool, len(manual))
		maxManualPosition := 0
		for _, membership := range manual {
			manualIDs[membership.ProductID] = true
			if membership.Position > maxManualPosition {
				maxManualPosition = membership.Position
			}
		}

		// A collection without rules keeps only its manual entries. This is a
		// distinct path: an empty rule list under "all" would otherwise
		// vacuously match the whole catalog.
		if len(rules) == 0 {
			if err := tx.Where("collection_id = ? AND is_manual = ?", collectionID, false).
				Delete(&models.CollectionProduct{}).Error; err != nil {
				return fmt.Errorf("failed to clear automatic memberships: %w", err)
			}
			log.Printf("[collections] %s has no rules, kept %d manual memberships", collection.Slug, len(manual))
			return nil
		}

		snapshots, err := loadActiveProductSnapshots(ctx, tx)
		if err != nil {
			return err
		}

		qualifying := make([]uuid.UUID, 0)
		for _, snapshot := range snapshots {
			if productMatches(rules, collection.RuleMatch, snapshot) {
				qualifying = append(qualifying, snapshot.ID)
			}
		}

		// Full replace of automatic memberships, not an incremental diff
		if err := tx.Where("collection_id = ? AND is_manual = ?", collectionID, false).
			Delete(&models.CollectionProduct{}).Error; err != nil {
			return fmt.Errorf("failed to clear automatic memberships: %w", err)
		}

		inserted := 0
		for _, productID := range qualifying {
			if manualIDs[productID] {
				continue
			}
			membership := models.CollectionProduct{
				CollectionID: collectionID,
				ProductID:    productID,
				Position:     maxManualPosition + 1 + inserted,
				IsManual:     false,
			}
			if err := tx.Create(&membership).Error; err != nil {
				return fmt.Errorf("failed to insert membership for product %s: %w", productID, err)
			}
			inserted++
		}

		log.Printf("[collections] regenerated %s: %d rules (%s), %d automatic + %d manual members",
			collection.Slug, len(rules), collection.RuleMatch, inserted, len(manual))
		return nil
	})
}

// ════════════════════════════════════════════════════════════
// Manual membership operations
// ════════════════════════════════════════════════════════════

// AddCollectionProduct pins a product into a collection by hand. Idempotent:
// if the product is already a member (manual or automatic) nothing changes.
func AddCollectionProduct(ctx context.Context, db *gorm.DB, collectionID, productID uuid.UUID) error {
	mu := lockCollection(collectionID)
	mu.Lock()
	defer mu.Unlock()

	var count int64
	if err := db.WithContext(ctx).
		Model(&models.Collection{}).
		Where("id = ?", collectionID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up collection: %w", err)
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	if err := db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up product: %w", err)
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}

	var existing models.CollectionProduct
	err := db.WithContext(ctx).
		Where("collection_id = ? AND product_id = ?", collectionID, productID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	var maxPosition int
	if err := db.WithContext(ctx).
		Model(&models.CollectionProduct{}).
		Where("collection_id = ?", collectionID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPosition).Error; err != nil {
		return fmt.Errorf("failed to read max position: %w", err)
	}

	membership := models.CollectionProduct{
		CollectionID: collectionID,
		ProductID:    productID,
		Position:     maxPosition + 1,
		IsManual:     true,
	}
	if err := db.WithContext(ctx).Create(&membership).Error; err != nil {
		return fmt.Errorf("failed to add manual membership: %w", err)
	}
	return nil
}

// RemoveCollectionProduct deletes a membership row whether it is manual or
// automatic. A removed automatic member will reappear on the next
// regeneration if it still qualifies.
func RemoveCollectionProduct(ctx context.Context, db *gorm.DB, collectionID, productID uuid.UUID) error {
	mu := lockCollection(collectionID)
	mu.Lock()
	defer mu.Unlock()

	result := db.WithContext(ctx).
		Where("collection_id = ? AND product_id = ?", collectionID, productID).
		Delete(&models.CollectionProduct{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove membership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
