package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecoverySchedule controls the abandoned-checkout email cadence: the first
// email goes out FirstDelay after checkout creation, the second SecondDelay
// after the first, and the checkout expires ExpireDelay after the second.
type RecoverySchedule struct {
	FirstDelay  time.Duration
	SecondDelay time.Duration
	ExpireDelay time.Duration
}

var DefaultRecoverySchedule = RecoverySchedule{
	FirstDelay:  1 * time.Hour,
	SecondDelay: 23 * time.Hour,
	ExpireDelay: 48 * time.Hour,
}

const maxRecoveryEmails = 2

// RecoveryService walks checkouts whose next_email_at has come due and moves
// them through pending → email_sent → expired. Completion flips a checkout to
// recovered out-of-band (see CompleteCheckout), which the batch skips by the
// status filter alone.
type RecoveryService struct {
	db       *gorm.DB
	mailer   Mailer
	schedule RecoverySchedule
	storeURL string

	// funnel event sink, defaults to the checkout event tracker
	trackEvent func(ctx context.Context, checkoutID uuid.UUID, event string)
}

func NewRecoveryService(db *gorm.DB, mailer Mailer, schedule RecoverySchedule) *RecoveryService {
	storeURL := os.Getenv("STOREFRONT_URL")
	if storeURL == "" {
		storeURL = "http://localhost:3000"
	}
	return &RecoveryService{
		db:         db,
		mailer:     mailer,
		schedule:   schedule,
		storeURL:   storeURL,
		trackEvent: utils.LogCheckoutEvent,
	}
}

// Start launches the polling loop. Interval comes from
// RECOVERY_POLL_INTERVAL_SECONDS (default 300). The loop stops when ctx is
// cancelled.
func (s *RecoveryService) Start(ctx context.Context) {
	interval := 300
	if raw := os.Getenv("RECOVERY_POLL_INTERVAL_SECONDS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	log.Printf("✅ Abandoned-checkout recovery worker started (every %ds)", interval)
	ticker := time.NewTicker(time.Duration(interval) * time.Second)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[recovery] worker stopped")
				return
			case <-ticker.C:
				if err := s.ProcessDueCheckouts(ctx); err != nil {
					log.Printf("[recovery] batch failed: %v", err)
				}
			}
		}
	}()
}

// ProcessDueCheckouts runs one batch pass. Each checkout is handled
// independently: a failure is logged and skipped, never aborting the batch.
func (s *RecoveryService) ProcessDueCheckouts(ctx context.Context) error {
	now := time.Now()

	var due []models.Checkout
	if err := s.db.WithContext(ctx).
		Where("recovery_status IN ? AND next_email_at IS NOT NULL AND next_email_at <= ? AND completed_at IS NULL",
			[]string{models.RecoveryStatusPending, models.RecoveryStatusEmailSent}, now).
		Order("next_email_at ASC").
		Find(&due).Error; err != nil {
		return fmt.Errorf("failed to load due checkouts: %w", err)
	}

	if len(due) == 0 {
		return nil
	}
	log.Printf("[recovery] processing %d due checkout(s)", len(due))

	for i := range due {
		if err := s.processOne(ctx, &due[i]); err != nil {
			log.Printf("[recovery] checkout %s: %v", due[i].ID, err)
		}
	}
	return nil
}

func (s *RecoveryService) processOne(ctx context.Context, checkout *models.Checkout) error {
	// Out of emails: the checkout is a lost cause, expire it
	if checkout.EmailsSent >= maxRecoveryEmails {
		checkout.RecoveryStatus = models.RecoveryStatusExpired
		checkout.NextEmailAt = nil
		if err := s.db.WithContext(ctx).Save(checkout).Error; err != nil {
			return fmt.Errorf("failed to expire: %w", err)
		}
		s.trackEvent(ctx, checkout.ID, utils.CheckoutEventExpired)
		log.Printf("[recovery] checkout %s expired", checkout.ID)
		return nil
	}

	var lines []models.CheckoutLineItem
	if err := json.Unmarshal(checkout.Items, &lines); err != nil {
		return fmt.Errorf("failed to decode items: %w", err)
	}
	itemCount := 0
	for _, line := range lines {
		itemCount += line.Quantity
	}

	data := RecoveryEmailData{
		Email:       checkout.Email,
		RecoveryURL: fmt.Sprintf("%s/checkout/recover/%s", s.storeURL, checkout.RecoveryToken),
		TotalAmount: checkout.TotalAmount,
		ItemCount:   itemCount,
		FinalNotice: checkout.EmailsSent == maxRecoveryEmails-1,
	}
	if err := s.mailer.SendCheckoutRecoveryEmail(data); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	checkout.EmailsSent++
	checkout.RecoveryStatus = models.RecoveryStatusEmailSent
	var next time.Time
	if checkout.EmailsSent < maxRecoveryEmails {
		next = time.Now().Add(s.schedule.SecondDelay)
	} else {
		// the next due pass expires it
		next = time.Now().Add(s.schedule.ExpireDelay)
	}
	checkout.NextEmailAt = &next

	if err := s.db.WithContext(ctx).Save(checkout).Error; err != nil {
		return fmt.Errorf("failed to advance state: %w", err)
	}
	s.trackEvent(ctx, checkout.ID, utils.CheckoutEventEmailSent)
	log.Printf("[recovery] checkout %s: email %d sent to %s", checkout.ID, checkout.EmailsSent, checkout.Email)
	return nil
}
