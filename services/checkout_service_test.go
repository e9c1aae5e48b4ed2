package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedCart creates a cart holding one line of the product's default variant.
func seedCart(t *testing.T, db *gorm.DB, token string, product models.Product, quantity int) models.Cart {
	t.Helper()

	cart := models.Cart{Token: token}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID:      cart.ID,
		ProductID:   product.ID,
		VariantID:   product.Variants[0].ID,
		ProductName: product.Name,
		VariantName: product.Variants[0].Name,
		UnitPrice:   product.Price,
		Quantity:    quantity,
	}).Error)
	return cart
}

func TestStartCheckout(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Classic Tee", 25, 10, nil)
	seedCart(t, db, "cart-token-1", product, 3)

	checkout, err := StartCheckout(ctx, db, "cart-token-1", "shopper@example.com")
	require.NoError(t, err)

	assert.Equal(t, "shopper@example.com", checkout.Email)
	assert.Equal(t, 75.0, checkout.Subtotal)
	assert.Equal(t, 75.0, checkout.TotalAmount)
	assert.Equal(t, models.RecoveryStatusPending, checkout.RecoveryStatus)
	assert.NotEmpty(t, checkout.RecoveryToken)
	assert.Zero(t, checkout.EmailsSent)
	assert.Nil(t, checkout.CompletedAt)

	require.NotNil(t, checkout.NextEmailAt)
	assert.WithinDuration(t, time.Now().Add(DefaultRecoverySchedule.FirstDelay), *checkout.NextEmailAt, time.Minute)
}

func TestStartCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)

	cart := models.Cart{Token: "empty-cart"}
	require.NoError(t, db.Create(&cart).Error)

	_, err := StartCheckout(context.Background(), db, "empty-cart", "shopper@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestStartCheckoutUnknownCart(t *testing.T) {
	db := newTestDB(t)

	_, err := StartCheckout(context.Background(), db, "no-such-cart", "shopper@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCompleteCheckout(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Premium Tee", 40, 10, nil)
	cart := seedCart(t, db, "cart-token-2", product, 2)
	checkout, err := StartCheckout(ctx, db, "cart-token-2", "jane@example.com")
	require.NoError(t, err)

	order, err := CompleteCheckout(ctx, db, checkout.ID, "Jane Doe")
	require.NoError(t, err)

	year := time.Now().UTC().Year()
	assert.Equal(t, fmt.Sprintf("ORD-%d-000001", year), order.OrderNumber)
	assert.Equal(t, 80.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// customer created from the checkout email
	var customer models.Customer
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&customer).Error)
	assert.Equal(t, "Jane Doe", customer.Name)
	assert.Equal(t, customer.ID, order.CustomerID)

	// denormalized line items
	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Premium Tee", items[0].ProductName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 80.0, items[0].Subtotal)

	// stock decremented
	var record models.InventoryRecord
	require.NoError(t, db.Where("variant_id = ?", product.Variants[0].ID).First(&record).Error)
	assert.Equal(t, 8, record.Available)

	// checkout closed out and cart emptied
	var reloaded models.Checkout
	require.NoError(t, db.First(&reloaded, "id = ?", checkout.ID).Error)
	assert.Equal(t, models.RecoveryStatusRecovered, reloaded.RecoveryStatus)
	assert.Nil(t, reloaded.NextEmailAt)
	assert.NotNil(t, reloaded.CompletedAt)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestCompleteCheckoutTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Limited Tee", 60, 10, nil)
	seedCart(t, db, "cart-token-3", product, 1)
	checkout, err := StartCheckout(ctx, db, "cart-token-3", "sam@example.com")
	require.NoError(t, err)

	_, err = CompleteCheckout(ctx, db, checkout.ID, "Sam")
	require.NoError(t, err)

	_, err = CompleteCheckout(ctx, db, checkout.ID, "Sam")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already completed")

	// the double completion must not decrement stock again
	var record models.InventoryRecord
	require.NoError(t, db.Where("variant_id = ?", product.Variants[0].ID).First(&record).Error)
	assert.Equal(t, 9, record.Available)
}

func TestCompleteCheckoutReusesCustomer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	existing := models.Customer{Email: "repeat@example.com", Name: "Repeat Buyer"}
	require.NoError(t, db.Create(&existing).Error)

	product := seedProduct(t, db, "Repeat Tee", 20, 10, nil)
	seedCart(t, db, "cart-token-4", product, 1)
	checkout, err := StartCheckout(ctx, db, "cart-token-4", "repeat@example.com")
	require.NoError(t, err)

	order, err := CompleteCheckout(ctx, db, checkout.ID, "Different Name")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, order.CustomerID)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "completion must not duplicate the customer")

	// the stored name is untouched for an existing customer
	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, "id = ?", existing.ID).Error)
	assert.Equal(t, "Repeat Buyer", reloaded.Name)
}

func TestCompleteCheckoutOversellRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Scarce Tee", 30, 1, nil)
	seedCart(t, db, "cart-token-5", product, 3)
	checkout, err := StartCheckout(ctx, db, "cart-token-5", "late@example.com")
	require.NoError(t, err)

	_, err = CompleteCheckout(ctx, db, checkout.ID, "Late Shopper")
	require.Error(t, err)

	// everything rolls back: no order, stock untouched, checkout still open
	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var record models.InventoryRecord
	require.NoError(t, db.Where("variant_id = ?", product.Variants[0].ID).First(&record).Error)
	assert.Equal(t, 1, record.Available)

	var reloaded models.Checkout
	require.NoError(t, db.First(&reloaded, "id = ?", checkout.ID).Error)
	assert.Nil(t, reloaded.CompletedAt)
	assert.Equal(t, models.RecoveryStatusPending, reloaded.RecoveryStatus)
}

func TestOrderNumbersAreSequential(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Serial Tee", 10, 50, nil)
	year := time.Now().UTC().Year()

	for i := 1; i <= 3; i++ {
		token := fmt.Sprintf("serial-cart-%d", i)
		seedCart(t, db, token, product, 1)
		checkout, err := StartCheckout(ctx, db, token, fmt.Sprintf("buyer%d@example.com", i))
		require.NoError(t, err)

		order, err := CompleteCheckout(ctx, db, checkout.ID, "")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ORD-%d-%06d", year, i), order.OrderNumber)
	}
}

func TestNewRecoveryTokenUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token := NewRecoveryToken()
		assert.Len(t, token, 48)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
