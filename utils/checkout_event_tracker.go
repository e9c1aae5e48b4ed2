// ════════════════════════════════════════════════════════════
// Path: utils/checkout_event_tracker.go
// Track checkout lifecycle events for the recovery funnel
// ════════════════════════════════════════════════════════════

package utils

import (
	"context"
	"log"

	"github.com/Lumera-Commerce/lumera-storefront-backend/config"
	"github.com/google/uuid"
)

// Checkout event names
const (
	CheckoutEventStarted   = "started"
	CheckoutEventEmailSent = "email_sent"
	CheckoutEventRecovered = "recovered"
	CheckoutEventExpired   = "expired"
)

// LogCheckoutEvent records one checkout lifecycle event. Events feed the
// recovery-funnel stats query; a failed insert is logged and swallowed so it
// never fails the request that triggered it.
func LogCheckoutEvent(ctx context.Context, checkoutID uuid.UUID, event string) {
	if config.StoreDB == nil {
		return
	}

	query := `
		INSERT INTO checkout_events (id, checkout_id, event, occurred_at)
		VALUES ($1, $2, $3, NOW())
	`

	_, err := config.StoreDB.Exec(ctx, query,
		uuid.New().String(),
		checkoutID.String(),
		event,
	)
	if err != nil {
		log.Printf("❌ Failed to log checkout event %s for %s: %v", event, checkoutID, err)
	}
}
