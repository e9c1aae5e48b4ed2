package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Lumera-Commerce/lumera-storefront-backend/models"
	"github.com/Lumera-Commerce/lumera-storefront-backend/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent []RecoveryEmailData
	err  error
}

func (f *fakeMailer) SendCheckoutRecoveryEmail(data RecoveryEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// distinct from the default schedule to prove the injected one is used
var testSchedule = RecoverySchedule{
	FirstDelay:  5 * time.Minute,
	SecondDelay: 30 * time.Minute,
	ExpireDelay: 2 * time.Hour,
}

func seedCheckout(t *testing.T, db *gorm.DB, mutate func(*models.Checkout)) models.Checkout {
	t.Helper()

	items, err := json.Marshal([]models.CheckoutLineItem{{
		ProductID:   uuid.Must(uuid.NewV7()),
		VariantID:   uuid.Must(uuid.NewV7()),
		ProductName: "Classic Tee",
		VariantName: "Default",
		UnitPrice:   25,
		Quantity:    2,
	}})
	require.NoError(t, err)

	due := time.Now().Add(-time.Minute)
	checkout := models.Checkout{
		Email:          "shopper@example.com",
		Items:          items,
		Subtotal:       50,
		TotalAmount:    50,
		RecoveryStatus: models.RecoveryStatusPending,
		RecoveryToken:  NewRecoveryToken(),
		NextEmailAt:    &due,
	}
	if mutate != nil {
		mutate(&checkout)
	}
	require.NoError(t, db.Create(&checkout).Error)
	return checkout
}

func TestRecoveryFirstEmail(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := NewRecoveryService(db, mailer, testSchedule)

	checkout := seedCheckout(t, db, nil)
	require.NoError(t, svc.ProcessDueCheckouts(context.Background()))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "shopper@example.com", mailer.sent[0].Email)
	assert.Contains(t, mailer.sent[0].RecoveryURL, checkout.RecoveryToken)
	assert.Equal(t, 50.0, mailer.sent[0].TotalAmount)
	assert.Equal(t, 2, mailer.sent[0].ItemCount)
	assert.False(t, mailer.sent[0].FinalNotice)

	var reloaded models.Checkout
	require.NoError(t, db.First(&reloaded, "id = ?", checkout.ID).Error)
	assert.Equal(t, models.RecoveryStatusEmailSent, reloaded.RecoveryStatus)
	assert.Equal(t, 1, reloaded.EmailsSent)
	require.NotNil(t, reloaded.NextEmailAt)
	assert.WithinDuration(t, time.Now().Add(testSchedule.SecondDelay), *reloaded.NextEmailAt, time.Minute)
}

func TestRecoverySecondEmailIsFinalNotice(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := NewRecoveryService(db, mailer, testSchedule)

	checkout := seedCheckout(t, db, func(c *models.Checkout) {
		c.RecoveryStatus = models.RecoveryStatusEmailSent
		c.EmailsSent = 1
	})
	require.NoError(t, svc.ProcessDueCheckouts(context.Background()))

	require.Len(t, mailer.sent, 1)
	assert.True(t, mailer.sent[0].FinalNotice)

	var reloaded models.Checkout
	require.NoError(t, db.First(&reloaded, "id = ?", checkout.ID).Error)
	assert.Equal(t, 2, reloaded.EmailsSent)
	assert.Equal(t, models.RecoveryStatusEmailSent, reloaded.RecoveryStatus)
	require.NotNil(t, reloaded.NextEmailAt)
	assert.WithinDuration(t, time.Now().Add(testSchedule.ExpireDelay), *reloaded.NextEmailAt, time.Minute)
}

func TestRecoveryExpiresAfterMaxEmails(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := NewRecoveryService(db, mailer, testSchedule)

	checkout := seedCheckout(t, db, func(c *models.Checkout) {
		c.RecoveryStatus = models.RecoveryStatusEmailSent
		c.EmailsSent = 2
	})
	require.NoError(t, svc.ProcessDueCheckouts(context.Background()))

	assert.Empty(t, mailer.sent, "an exhausted checkout gets no further email")

	var reloaded models.Checkout
	require.NoError(t, db.First(&reloaded, "id = ?", checkout.ID).Error)
	assert.Equal(t, models.RecoveryStatusExpired, reloaded.RecoveryStatus)
	assert.Nil(t, reloaded.NextEmailAt)
}

func TestRecoverySkipsNotDueAndClosed(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := NewRecoveryService(db, mailer, testSchedule)

	future := time.Now().Add(time.Hour)
	notDue := seedCheckout(t, db, func(c *models.Checkout) {
		c.NextEmailAt = &future
	})
	completed := seedCheckout(t, db, func(c *models.Checkout) {
		now := time.Now()
		c.CompletedAt = &now
		c.RecoveryStatus = models.RecoveryStatusRecovered
		c.NextEmailAt = nil
	})
	expired := seedCheckout(t, db, func(c *models.Checkout) {
		c.RecoveryStatus = models.RecoveryStatusExpired
		c.NextEmailAt = nil
	})

	require.NoError(t, svc.ProcessDueCheckouts(context.Background()))
	assert.Empty(t, mailer.sent)

	for _, id := range []uuid.UUID{notDue.ID, completed.ID, expired.ID} {
		var reloaded models.Checkout
		require.NoError(t, db.First(&reloaded, "id = ?", id).Error)
		assert.Zero(t, reloaded.EmailsSent)
	}
}

func TestRecoveryMailerFailureLeavesStateUntouched(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{err: errors.New("provider down")}
	svc := NewRecoveryService(db, mailer, testSchedule)

	checkout := seedCheckout(t, db, nil)
	require.NoError(t, svc.ProcessDueCheckouts(context.Background()), "a send failure must not abort the batch")

	var reloaded models.Checkout
	require.NoError(t, db.First(&reloaded, "id = ?", checkout.ID).Error)
	assert.Equal(t, models.RecoveryStatusPending, reloaded.RecoveryStatus)
	assert.Zero(t, reloaded.EmailsSent)
	require.NotNil(t, reloaded.NextEmailAt)
}

func TestRecoveryEmitsFunnelEvents(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := NewRecoveryService(db, mailer, testSchedule)

	type trackedEvent struct {
		checkoutID uuid.UUID
		event      string
	}
	var tracked []trackedEvent
	svc.trackEvent = func(_ context.Context, checkoutID uuid.UUID, event string) {
		tracked = append(tracked, trackedEvent{checkoutID, event})
	}

	sent := seedCheckout(t, db, nil)
	exhausted := seedCheckout(t, db, func(c *models.Checkout) {
		c.RecoveryStatus = models.RecoveryStatusEmailSent
		c.EmailsSent = 2
	})

	require.NoError(t, svc.ProcessDueCheckouts(context.Background()))

	require.Len(t, tracked, 2)
	assert.Equal(t, sent.ID, tracked[0].checkoutID)
	assert.Equal(t, utils.CheckoutEventEmailSent, tracked[0].event)
	assert.Equal(t, exhausted.ID, tracked[1].checkoutID)
	assert.Equal(t, utils.CheckoutEventExpired, tracked[1].event)
}

func TestRecoveryProcessesMultipleDue(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := NewRecoveryService(db, mailer, testSchedule)

	older := time.Now().Add(-2 * time.Hour)
	seedCheckout(t, db, func(c *models.Checkout) {
		c.Email = "first@example.com"
		c.NextEmailAt = &older
	})
	seedCheckout(t, db, func(c *models.Checkout) {
		c.Email = "second@example.com"
	})

	require.NoError(t, svc.ProcessDueCheckouts(context.Background()))

	require.Len(t, mailer.sent, 2)
	// oldest due first
	assert.Equal(t, "first@example.com", mailer.sent[0].Email)
	assert.Equal(t, "second@example.com", mailer.sent[1].Email)
}
