package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewRecoveryToken returns the opaque token embedded in recovery email links.
func NewRecoveryToken() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read only fails when the OS entropy source is broken
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// StartCheckout freezes the cart's line items into a new checkout and arms
// abandoned-checkout recovery (first email due after the configured delay).
func StartCheckout(ctx context.Context, db *gorm.DB, cartToken, email string) (*models.Checkout, error) {
	var cart models.Cart
	if err := db.WithContext(ctx).
		Preload("Items").
		Where("token = ?", cartToken).
		First(&cart).Error; err != nil {
		return nil, fmt.Errorf("cart %s: %w", cartToken, err)
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cart %s is empty", cartToken)
	}

	lines := make([]models.CheckoutLineItem, 0, len(cart.Items))
	subtotal := 0.0
	for _, item := range cart.Items {
		lines = append(lines, models.CheckoutLineItem{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			VariantName: item.VariantName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize checkout items: %w", err)
	}

	nextEmailAt := time.Now().Add(DefaultRecoverySchedule.FirstDelay)
	checkout := models.Checkout{
		CartID:         &cart.ID,
		CustomerID:     cart.CustomerID,
		Email:          email,
		Items:          itemsJSON,
		Subtotal:       subtotal,
		TotalAmount:    subtotal,
		RecoveryStatus: models.RecoveryStatusPending,
		RecoveryToken:  NewRecoveryToken(),
		NextEmailAt:    &nextEmailAt,
	}
	if err := db.WithContext(ctx).Create(&checkout).Error; err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}
	return &checkout, nil
}

// generateOrderNumber produces ORD-<year>-<seq>, sequential per year.
func generateOrderNumber(tx *gorm.DB) (string, error) {
	year := time.Now().UTC().Year()
	var count int64
	if err := tx.Model(&models.Order{}).
		Where("order_number LIKE ?", fmt.Sprintf("ORD-%d-%%", year)).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count orders: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%06d", year, count+1), nil
}

// CompleteCheckout turns a checkout into an order: find-or-create the
// customer by email, write the order with denormalized line items, decrement
// variant inventory, mark the checkout recovered, and empty the cart. Runs in
// one transaction; a second completion of the same checkout is rejected.
func CompleteCheckout(ctx context.Context, db *gorm.DB, checkoutID uuid.UUID, customerName string) (*models.Order, error) {
	var order *models.Order

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var checkout models.Checkout
		if err := tx.First(&checkout, "id = ?", checkoutID).Error; err != nil {
			return fmt.Errorf("checkout %s: %w", checkoutID, err)
		}
		if checkout.CompletedAt != nil {
			return fmt.Errorf("checkout %s already completed", checkoutID)
		}

		var lines []models.CheckoutLineItem
		if err := json.Unmarshal(checkout.Items, &lines); err != nil {
			return fmt.Errorf("failed to decode checkout items: %w", err)
		}
		if len(lines) == 0 {
			return fmt.Errorf("checkout %s has no items", checkoutID)
		}

		// Find or create the customer by email
		var customer models.Customer
		err := tx.Where("email = ?", checkout.Email).First(&customer).Error
		if err == gorm.ErrRecordNotFound {
			name := customerName
			if name == "" {
				name = checkout.Email
			}
			customer = models.Customer{Email: checkout.Email, Name: name}
			if err := tx.Create(&customer).Error; err != nil {
				return fmt.Errorf("failed to create customer: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up customer: %w", err)
		}

		orderNumber, err := generateOrderNumber(tx)
		if err != nil {
			return err
		}

		newOrder := models.Order{
			OrderNumber:  orderNumber,
			CustomerID:   customer.ID,
			CheckoutID:   &checkout.ID,
			Subtotal:     checkout.Subtotal,
			ShippingCost: checkout.ShippingCost,
			TotalAmount:  checkout.TotalAmount,
			Status:       models.OrderStatusPending,
		}
		if err := tx.Create(&newOrder).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range lines {
			item := models.OrderItem{
				OrderID:     newOrder.ID,
				ProductID:   line.ProductID,
				VariantID:   line.VariantID,
				ProductName: line.ProductName,
				VariantName: line.VariantName,
				Price:       line.UnitPrice,
				Quantity:    line.Quantity,
				Subtotal:    line.UnitPrice * float64(line.Quantity),
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			// Decrement stock; the check constraint rejects oversells
			result := tx.Model(&models.InventoryRecord{}).
				Where("variant_id = ?", line.VariantID).
				UpdateColumn("available", gorm.Expr("available - ?", line.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement inventory for variant %s: %w", line.VariantID, result.Error)
			}
		}

		// Close out recovery tracking, whatever state the batch left it in
		now := time.Now()
		checkout.RecoveryStatus = models.RecoveryStatusRecovered
		checkout.NextEmailAt = nil
		checkout.CompletedAt = &now
		if err := tx.Save(&checkout).Error; err != nil {
			return fmt.Errorf("failed to update checkout: %w", err)
		}

		// Empty the originating cart
		if checkout.CartID != nil {
			if err := tx.Where("cart_id = ?", *checkout.CartID).
				Delete(&models.CartItem{}).Error; err != nil {
				return fmt.Errorf("failed to clear cart: %w", err)
			}
		}

		order = &newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[checkout] ✓ completed %s as order %s", checkoutID, order.OrderNumber)
	return order, nil
}
