package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

// RecoveryEmailData holds what a cart-recovery email needs to render.
type RecoveryEmailData struct {
	Email       string
	RecoveryURL string
	TotalAmount float64
	ItemCount   int
	FinalNotice bool
}

// Mailer is the delivery collaborator. The recovery batch only cares that a
// send either succeeded or failed; delivery mechanics stay behind this.
type Mailer interface {
	SendCheckoutRecoveryEmail(data RecoveryEmailData) error
}

// ResendClient sends email via the Resend HTTP API.
type ResendClient struct {
	apiKey  string
	from    string
	baseURL string
}

// NewResendClient creates a new Resend client
func NewResendClient() *ResendClient {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		log.Fatal("RESEND_API_KEY environment variable not set")
	}

	from := os.Getenv("RESEND_FROM_EMAIL")
	if from == "" {
		from = "noreply@mail.lumera.shop"
	}

	return &ResendClient{
		apiKey:  apiKey,
		from:    from,
		baseURL: "https://api.resend.com",
	}
}

// SendCheckoutRecoveryEmail sends a "you left something behind" email
func (r *ResendClient) SendCheckoutRecoveryEmail(data RecoveryEmailData) error {
	subject := "You left something in your bag"
	if data.FinalNotice {
		subject = "Last chance to finish your order"
	}

	payload := map[string]interface{}{
		"from":    r.from,
		"to":      data.Email,
		"subject": subject,
		"html":    r.buildRecoveryHTML(data),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[resend] failed to marshal payload: %v", err)
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", r.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Printf("[resend] failed to create request: %v", err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.apiKey))
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[resend] failed to send request: %v", err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[resend] failed to read response: %v", err)
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[resend] api returned status %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("resend api error: status %d", resp.StatusCode)
	}

	log.Printf("[resend] recovery email sent to %s", data.Email)
	return nil
}

func (r *ResendClient) buildRecoveryHTML(data RecoveryEmailData) string {
	headline := "Your bag is waiting"
	if data.FinalNotice {
		headline = "Your bag is about to expire"
	}

	return fmt.Sprintf(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>%s</title>
  </head>
  <body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif; background-color: #ffffff; color: #1a1a1a; line-height: 1.6;">
    <div style="background-color: #ffffff; padding: 60px 20px;">
      <div style="max-width: 600px; margin: 0 auto;">
        <div style="padding: 0 0 60px 0;">
          <div style="font-size: 24px; font-weight: 700; letter-spacing: -0.3px;">Lumera</div>
        </div>

        <p style="font-size: 32px; font-weight: 700; color: #000000; margin: 0 0 24px 0; letter-spacing: -0.8px; line-height: 1.2;">%s</p>

        <p style="font-size: 17px; color: #626262; line-height: 1.8; margin: 0 0 40px 0;">
          You have <span style="color: #000000; font-weight: 600;">%d item(s)</span> worth
          <span style="color: #000000; font-weight: 600;">$%.2f</span> waiting in your bag.
          Pick up where you left off and finish your order in one click.
        </p>

        <div style="margin: 50px 0 60px 0;">
          <a href="%s" style="display: inline-block; padding: 16px 32px; background: #000000; color: #ffffff; text-decoration: none; border-radius: 6px; font-weight: 600; font-size: 16px;">Resume checkout</a>
        </div>

        <hr style="border: 0; height: 1px; background: #e5e5e5; margin: 60px 0;" />

        <p style="font-size: 13px; color: #626262; line-height: 1.7;">
          If you already completed your order, you can ignore this email.
        </p>
      </div>
    </div>
  </body>
</html>`, headline, headline, data.ItemCount, data.TotalAmount, data.RecoveryURL)
}
