package services

import (
	"context"
	"testing"

	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func rule(ruleType, operator, value string) models.CollectionRule {
	return models.CollectionRule{RuleType: ruleType, Operator: operator, Value: value}
}

func TestEvaluateRule(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV7())
	vendorID := uuid.Must(uuid.NewV7())

	base := productSnapshot{
		Price:          49.99,
		CompareAtPrice: ptrFloat(79.99),
		CategoryID:     &categoryID,
		VendorID:       &vendorID,
		Status:         models.ProductStatusActive,
		Tags:           []string{"cotton", "summer"},
		TotalInventory: 12,
	}
	noCompareAt := base
	noCompareAt.CompareAtPrice = nil
	uncategorized := base
	uncategorized.CategoryID = nil
	uncategorized.VendorID = nil

	tests := []struct {
		name string
		rule models.CollectionRule
		p    productSnapshot
		want bool
	}{
		{"price greater_than match", rule(models.RuleTypePrice, models.OpGreaterThan, "40"), base, true},
		{"price greater_than miss", rule(models.RuleTypePrice, models.OpGreaterThan, "50"), base, false},
		{"price less_than_or_equals boundary", rule(models.RuleTypePrice, models.OpLessThanOrEquals, "49.99"), base, true},
		{"price equals", rule(models.RuleTypePrice, models.OpEquals, "49.99"), base, true},
		{"price not_equals", rule(models.RuleTypePrice, models.OpNotEquals, "10"), base, true},
		{"price unparseable value never matches", rule(models.RuleTypePrice, models.OpGreaterThan, "cheap"), base, false},
		{"price unparseable value blocks not_equals too", rule(models.RuleTypePrice, models.OpNotEquals, "cheap"), base, false},

		{"compare_at_price greater_than", rule(models.RuleTypeCompareAtPrice, models.OpGreaterThan, "0"), base, true},
		{"compare_at_price nil never matches", rule(models.RuleTypeCompareAtPrice, models.OpGreaterThan, "0"), noCompareAt, false},
		{"compare_at_price nil blocks not_equals", rule(models.RuleTypeCompareAtPrice, models.OpNotEquals, "0"), noCompareAt, false},

		{"inventory greater_than_or_equals", rule(models.RuleTypeInventory, models.OpGreaterThanOrEquals, "12"), base, true},
		{"inventory less_than", rule(models.RuleTypeInventory, models.OpLessThan, "5"), base, false},

		{"category equals match", rule(models.RuleTypeCategory, models.OpEquals, categoryID.String()), base, true},
		{"category equals miss", rule(models.RuleTypeCategory, models.OpEquals, uuid.Must(uuid.NewV7()).String()), base, false},
		{"category not_equals", rule(models.RuleTypeCategory, models.OpNotEquals, uuid.Must(uuid.NewV7()).String()), base, true},
		{"uncategorized equals never matches", rule(models.RuleTypeCategory, models.OpEquals, categoryID.String()), uncategorized, false},
		{"uncategorized not_equals matches", rule(models.RuleTypeCategory, models.OpNotEquals, categoryID.String()), uncategorized, true},
		{"category ordering operator unsupported", rule(models.RuleTypeCategory, models.OpGreaterThan, categoryID.String()), base, false},

		{"vendor equals match", rule(models.RuleTypeVendor, models.OpEquals, vendorID.String()), base, true},
		{"no vendor not_equals matches", rule(models.RuleTypeVendor, models.OpNotEquals, vendorID.String()), uncategorized, true},

		{"tag equals present", rule(models.RuleTypeTag, models.OpEquals, "cotton"), base, true},
		{"tag equals absent", rule(models.RuleTypeTag, models.OpEquals, "wool"), base, false},
		{"tag not_equals absent", rule(models.RuleTypeTag, models.OpNotEquals, "wool"), base, true},
		{"tag contains not implemented", rule(models.RuleTypeTag, models.OpContains, "cotton"), base, false},
		{"tag not_contains not implemented", rule(models.RuleTypeTag, models.OpNotContains, "wool"), base, false},

		{"status equals", rule(models.RuleTypeStatus, models.OpEquals, models.ProductStatusActive), base, true},
		{"status not_equals", rule(models.RuleTypeStatus, models.OpNotEquals, models.ProductStatusDraft), base, true},

		{"unknown rule type never matches", rule("weight", models.OpEquals, "1"), base, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, evaluateRule(tc.rule, tc.p))
		})
	}
}

func TestProductMatchesModes(t *testing.T) {
	p := productSnapshot{Price: 100, Tags: []string{"sale"}}
	cheap := rule(models.RuleTypePrice, models.OpLessThan, "50")
	tagged := rule(models.RuleTypeTag, models.OpEquals, "sale")

	// all: every rule must pass
	assert.False(t, productMatches([]models.CollectionRule{cheap, tagged}, models.MatchAll, p))
	assert.True(t, productMatches([]models.CollectionRule{tagged}, models.MatchAll, p))

	// any: one passing rule is enough, order does not matter
	assert.True(t, productMatches([]models.CollectionRule{cheap, tagged}, models.MatchAny, p))
	assert.True(t, productMatches([]models.CollectionRule{tagged, cheap}, models.MatchAny, p))
	assert.False(t, productMatches([]models.CollectionRule{cheap}, models.MatchAny, p))
}

func TestRegenerateNoRulesKeepsManualOnly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	manual := seedProduct(t, db, "Pinned Tee", 20, 10, nil)
	stale := seedProduct(t, db, "Stale Tee", 20, 10, nil)
	collection := seedCollection(t, db, "Curated", models.MatchAll, nil)

	require.NoError(t, db.Create(&models.CollectionProduct{
		CollectionID: collection.ID, ProductID: manual.ID, Position: 1, IsManual: true,
	}).Error)
	// leftover automatic row from a previous rule set
	require.NoError(t, db.Create(&models.CollectionProduct{
		CollectionID: collection.ID, ProductID: stale.ID, Position: 2, IsManual: false,
	}).Error)

	require.NoError(t, RegenerateCollectionProducts(ctx, db, collection.ID))

	members := memberIDs(t, db, collection.ID)
	require.Len(t, members, 1)
	assert.Equal(t, manual.ID, members[0].ProductID)
	assert.True(t, members[0].IsManual)
}

func TestRegenerateManualTakesPrecedence(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Sale Tee", 15, 10, func(p *models.Product) {
		p.CompareAtPrice = ptrFloat(25)
	})
	collection := seedCollection(t, db, "On Sale", models.MatchAll, []models.CollectionRule{
		rule(models.RuleTypeCompareAtPrice, models.OpGreaterThan, "0"),
	})
	require.NoError(t, db.Create(&models.CollectionProduct{
		CollectionID: collection.ID, ProductID: product.ID, Position: 1, IsManual: true,
	}).Error)

	require.NoError(t, RegenerateCollectionProducts(ctx, db, collection.ID))

	members := memberIDs(t, db, collection.ID)
	require.Len(t, members, 1)
	assert.True(t, members[0].IsManual, "qualifying manual member must stay manual")
}

func TestRegeneratePositionsFollowManualBlock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pinned := seedProduct(t, db, "Pinned", 200, 10, nil)
	first := seedProduct(t, db, "Match One", 80, 10, nil)
	second := seedProduct(t, db, "Match Two", 90, 10, nil)
	collection := seedCollection(t, db, "Premium", models.MatchAll, []models.CollectionRule{
		rule(models.RuleTypePrice, models.OpLessThan, "100"),
	})
	require.NoError(t, db.Create(&models.CollectionProduct{
		CollectionID: collection.ID, ProductID: pinned.ID, Position: 5, IsManual: true,
	}).Error)

	require.NoError(t, RegenerateCollectionProducts(ctx, db, collection.ID))

	members := memberIDs(t, db, collection.ID)
	require.Len(t, members, 3)
	assert.Equal(t, pinned.ID, members[0].ProductID)
	assert.Equal(t, 5, members[0].Position)
	// automatic entries slot in after the highest manual position, in
	// catalog creation order
	assert.Equal(t, first.ID, members[1].ProductID)
	assert.Equal(t, 6, members[1].Position)
	assert.Equal(t, second.ID, members[2].ProductID)
	assert.Equal(t, 7, members[2].Position)
	assert.False(t, members[1].IsManual)
	assert.False(t, members[2].IsManual)
}

func TestRegenerateAnyMode(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cheap := seedProduct(t, db, "Cheap", 10, 10, nil)
	tagged := seedProduct(t, db, "Tagged", 500, 10, func(p *models.Product) {
		p.Tags = models.TagsList{"clearance"}
	})
	seedProduct(t, db, "Neither", 500, 10, nil)

	collection := seedCollection(t, db, "Deals", models.MatchAny, []models.CollectionRule{
		rule(models.RuleTypePrice, models.OpLessThan, "50"),
		rule(models.RuleTypeTag, models.OpEquals, "clearance"),
	})

	require.NoError(t, RegenerateCollectionProducts(ctx, db, collection.ID))

	members := memberIDs(t, db, collection.ID)
	require.Len(t, members, 2)
	assert.Equal(t, cheap.ID, members[0].ProductID)
	assert.Equal(t, tagged.ID, members[1].ProductID)
}

func TestRegenerateSkipsInactiveProducts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedProduct(t, db, "Draft Tee", 10, 10, func(p *models.Product) {
		p.Status = models.ProductStatusDraft
	})
	active := seedProduct(t, db, "Active Tee", 10, 10, nil)

	collection := seedCollection(t, db, "Budget", models.MatchAll, []models.CollectionRule{
		rule(models.RuleTypePrice, models.OpLessThan, "50"),
	})

	require.NoError(t, RegenerateCollectionProducts(ctx, db, collection.ID))

	members := memberIDs(t, db, collection.ID)
	require.Len(t, members, 1)
	assert.Equal(t, active.ID, members[0].ProductID)
}

func TestRegenerateSumsVariantInventory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Multi Variant", 30, 4, nil)
	extra := models.ProductVariant{
		ProductID: product.ID,
		SKU:       "multi-variant-l",
		Name:      "Large",
	}
	require.NoError(t, db.Create(&extra).Error)
	require.NoError(t, db.Create(&models.InventoryRecord{VariantID: extra.ID, Available: 8}).Error)

	// 4 + 8 across variants: in stock for > 10, not for > 20
	inStock := seedCollection(t, db, "In Stock", models.MatchAll, []models.CollectionRule{
		rule(models.RuleTypeInventory, models.OpGreaterThan, "10"),
	})
	require.NoError(t, RegenerateCollectionProducts(ctx, db, inStock.ID))
	assert.Len(t, memberIDs(t, db, inStock.ID), 1)

	deepStock := seedCollection(t, db, "Deep Stock", models.MatchAll, []models.CollectionRule{
		rule(models.RuleTypeInventory, models.OpGreaterThan, "20"),
	})
	require.NoError(t, RegenerateCollectionProducts(ctx, db, deepStock.ID))
	assert.Empty(t, memberIDs(t, db, deepStock.ID))
}

func TestRegenerateIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pinned := seedProduct(t, db, "Pinned", 5, 10, nil)
	seedProduct(t, db, "Cheap One", 10, 10, nil)
	seedProduct(t, db, "Cheap Two", 15, 10, nil)
	collection := seedCollection(t, db, "Under Twenty", models.MatchAll, []models.CollectionRule{
		rule(models.RuleTypePrice, models.OpLessThan, "20"),
	})
	require.NoError(t, db.Create(&models.CollectionProduct{
		CollectionID: collection.ID, ProductID: pinned.ID, Position: 2, IsManual: true,
	}).Error)

	require.NoError(t, RegenerateCollectionProducts(ctx, db, collection.ID))
	first := memberIDs(t, db, collection.ID)
	require.NotEmpty(t, first)

	// no catalog or rule change in between: the second run must produce the
	// same set, positions and flags included
	require.NoError(t, RegenerateCollectionProducts(ctx, db, collection.ID))
	second := memberIDs(t, db, collection.ID)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ProductID, second[i].ProductID)
		assert.Equal(t, first[i].Position, second[i].Position)
		assert.Equal(t, first[i].IsManual, second[i].IsManual)
	}
}

func TestRegenerateDropsNoLongerQualifying(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Was Cheap", 10, 10, nil)
	collection := seedCollection(t, db, "Under Twenty", models.MatchAll, []models.CollectionRule{
		rule(models.RuleTypePrice, models.OpLessThan, "20"),
	})

	require.NoError(t, RegenerateCollectionProducts(ctx, db, collection.ID))
	require.Len(t, memberIDs(t, db, collection.ID), 1)

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", 25).Error)
	require.NoError(t, RegenerateCollectionProducts(ctx, db, collection.ID))

	assert.Empty(t, memberIDs(t, db, collection.ID))
}

func TestRegenerateMissingCollection(t *testing.T) {
	db := newTestDB(t)

	err := RegenerateCollectionProducts(context.Background(), db, uuid.Must(uuid.NewV7()))
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAddCollectionProduct(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Pinnable", 10, 5, nil)
	collection := seedCollection(t, db, "Picks", models.MatchAll, nil)

	require.NoError(t, AddCollectionProduct(ctx, db, collection.ID, product.ID))

	members := memberIDs(t, db, collection.ID)
	require.Len(t, members, 1)
	assert.True(t, members[0].IsManual)
	assert.Equal(t, 1, members[0].Position)

	// adding twice is a no-op
	require.NoError(t, AddCollectionProduct(ctx, db, collection.ID, product.ID))
	assert.Len(t, memberIDs(t, db, collection.ID), 1)

	// unknown ids surface as not found
	err := AddCollectionProduct(ctx, db, uuid.Must(uuid.NewV7()), product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	err = AddCollectionProduct(ctx, db, collection.ID, uuid.Must(uuid.NewV7()))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRemoveCollectionProduct(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Removable", 10, 5, nil)
	collection := seedCollection(t, db, "Picks", models.MatchAll, nil)
	require.NoError(t, AddCollectionProduct(ctx, db, collection.ID, product.ID))

	require.NoError(t, RemoveCollectionProduct(ctx, db, collection.ID, product.ID))
	assert.Empty(t, memberIDs(t, db, collection.ID))

	err := RemoveCollectionProduct(ctx, db, collection.ID, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
