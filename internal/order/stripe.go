package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"

	"ms-catering/internal/models"
)

// InitStripe initializes the Stripe API with the secret key
func InitStripe(secretKey string) {
	stripe.Key = secretKey
}

// CreatePaymentIntent creates a Stripe payment intent for a checkout. The
// intent id comes back to us later as the order's transaction id.
func (s *OrderService) CreatePaymentIntent(ctx context.Context, identity models.Identity, req models.PaymentIntentRequest) (*stripe.PaymentIntent, error) {
	if req.Price <= 0 {
		return nil, &ValidationError{Field: "price", Reason: "must be positive"}
	}

	// Convert to the smallest currency unit, rounding to dodge float
	// artifacts.
	amount := int64(math.Round(req.Price * 100))

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyINR)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Description:        stripe.String("Food and Beverage Services - Catering Order"),
		Shipping: &stripe.ShippingDetailsParams{
			Name: stripe.String(orDefault(req.Name, "Customer")),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(orDefault(req.Address, "Default Address")),
				City:       stripe.String(orDefault(req.City, "Default City")),
				State:      stripe.String(orDefault(req.State, "Default State")),
				PostalCode: stripe.String(orDefault(req.PostalCode, "000000")),
				Country:    stripe.String("IN"),
			},
		},
	}
	params.AddMetadata("user_id", identity.ID)
	params.AddMetadata("service_type", "catering")

	intent, err := paymentintent.New(params)
	if err != nil {
		s.logger.Error("PAYMENT", fmt.Sprintf("Failed to create Stripe payment intent: %v", err))
		return nil, err
	}

	s.logger.Info("PAYMENT", fmt.Sprintf("Created payment intent %s (INR %0.2f) for user %s", intent.ID, req.Price, identity.ID))
	return intent, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// WebhookError classifies a webhook processing failure and separates what
// is safe to expose from what belongs in the logs.
type WebhookError struct {
	Category      string // "configuration", "validation", "processing"
	StatusCode    int
	PublicError   string
	InternalError string
	OriginalErr   error
}

func (e *WebhookError) Error() string {
	return e.InternalError
}

// HandleStripeWebhook verifies and applies a Stripe event. A succeeded
// payment confirms the matching pending online order; a failed payment
// cancels it. Both are idempotent: a replayed event for an order that
// already moved on is a no-op.
func (s *OrderService) HandleStripeWebhook(r *http.Request) error {
	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if webhookSecret == "" {
		s.logger.Error("WEBHOOK", "Stripe webhook secret is not configured")
		return &WebhookError{
			Category:      "configuration",
			StatusCode:    http.StatusInternalServerError,
			PublicError:   "Webhook processing error",
			InternalError: "Stripe webhook secret is not configured",
		}
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error("WEBHOOK", fmt.Sprintf("Failed to read webhook payload: %v", err))
		return &WebhookError{
			Category:      "validation",
			StatusCode:    http.StatusBadRequest,
			PublicError:   "Invalid webhook payload",
			InternalError: fmt.Sprintf("Failed to read webhook payload: %v", err),
			OriginalErr:   err,
		}
	}

	opts := webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	}
	event, err := webhook.ConstructEventWithOptions(payload, r.Header.Get("Stripe-Signature"), webhookSecret, opts)
	if err != nil {
		s.logger.Error("WEBHOOK", fmt.Sprintf("Webhook signature verification failed: %v", err))
		return &WebhookError{
			Category:      "validation",
			StatusCode:    http.StatusBadRequest,
			PublicError:   "Invalid webhook signature",
			InternalError: fmt.Sprintf("Webhook signature verification failed: %v", err),
			OriginalErr:   err,
		}
	}

	s.logger.Info("WEBHOOK", fmt.Sprintf("Processing Stripe webhook event: %s", event.Type))

	switch event.Type {
	case "payment_intent.succeeded":
		intent, werr := unmarshalIntent(event.Data.Raw)
		if werr != nil {
			return werr
		}
		return s.confirmPaidOrder(r.Context(), intent.ID)

	case "payment_intent.payment_failed":
		intent, werr := unmarshalIntent(event.Data.Raw)
		if werr != nil {
			return werr
		}
		return s.cancelFailedOrder(r.Context(), intent.ID)

	default:
		s.logger.Info("WEBHOOK", fmt.Sprintf("Unhandled event type: %s", event.Type))
	}

	return nil
}

func unmarshalIntent(raw json.RawMessage) (*stripe.PaymentIntent, *WebhookError) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, &WebhookError{
			Category:      "processing",
			StatusCode:    http.StatusBadRequest,
			PublicError:   "Invalid event data",
			InternalError: fmt.Sprintf("Failed to unmarshal payment intent: %v", err),
			OriginalErr:   err,
		}
	}
	return &intent, nil
}

// confirmPaidOrder advances the order carrying the intent's id as its
// transaction id from pending to confirmed.
func (s *OrderService) confirmPaidOrder(ctx context.Context, transactionID string) error {
	ord, err := s.DB.GetOrderByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Checkout posts the order after paying; the webhook can win
			// that race. Nothing to confirm yet.
			s.logger.Warn("WEBHOOK", fmt.Sprintf("no order found for transaction %s yet", transactionID))
			return nil
		}
		return &WebhookError{
			Category:      "processing",
			StatusCode:    http.StatusInternalServerError,
			PublicError:   "Failed to process payment",
			InternalError: fmt.Sprintf("lookup by transaction %s failed: %v", transactionID, err),
			OriginalErr:   err,
		}
	}

	if ord.Status != models.StatusPending {
		s.logger.Info("WEBHOOK", fmt.Sprintf("order %s already at %q, nothing to confirm", ord.OrderID, ord.Status))
		return nil
	}

	applied, err := s.DB.UpdateOrderStatusIf(ctx, ord.OrderID, models.StatusPending, models.StatusConfirmed)
	if err != nil {
		return &WebhookError{
			Category:      "processing",
			StatusCode:    http.StatusInternalServerError,
			PublicError:   "Failed to process payment",
			InternalError: fmt.Sprintf("failed to confirm order %s: %v", ord.OrderID, err),
			OriginalErr:   err,
		}
	}
	if applied {
		s.logger.LogOrder("CONFIRM", ord.OrderID, "confirmed by payment webhook")
	}
	return nil
}

func (s *OrderService) cancelFailedOrder(ctx context.Context, transactionID string) error {
	ord, err := s.DB.GetOrderByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return &WebhookError{
			Category:      "processing",
			StatusCode:    http.StatusInternalServerError,
			PublicError:   "Failed to process payment failure",
			InternalError: fmt.Sprintf("lookup by transaction %s failed: %v", transactionID, err),
			OriginalErr:   err,
		}
	}

	if !ord.Status.Cancellable() {
		s.logger.Warn("WEBHOOK", fmt.Sprintf("payment failed for order %s but status %q is past cancellation", ord.OrderID, ord.Status))
		return nil
	}

	if _, err := s.DB.UpdateOrderStatusIf(ctx, ord.OrderID, ord.Status, models.StatusCancelled); err != nil {
		return &WebhookError{
			Category:      "processing",
			StatusCode:    http.StatusInternalServerError,
			PublicError:   "Failed to cancel order after payment failure",
			InternalError: fmt.Sprintf("failed to cancel order %s: %v", ord.OrderID, err),
			OriginalErr:   err,
		}
	}
	s.logger.LogOrder("CANCEL", ord.OrderID, "cancelled after payment failure")
	return nil
}
