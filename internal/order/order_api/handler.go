package order_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-catering/internal/auth"
	"ms-catering/internal/logger"
	"ms-catering/internal/models"
	"ms-catering/internal/order"
	"ms-catering/internal/utils"
)

type Handler struct {
	OrderService *order.OrderService
	Logger       *logger.Logger
}

func NewHandler(orderService *order.OrderService, log *logger.Logger) *Handler {
	return &Handler{OrderService: orderService, Logger: log}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Internals never leak: unknown errors become a generic server error.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *order.ValidationError
	var transitionErr *order.IllegalTransitionError
	var conflictErr *order.AdvanceConflictError

	switch {
	case errors.Is(err, order.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Order not found", err.Error()))
	case errors.Is(err, order.ErrForbidden):
		h.writeJSON(w, http.StatusForbidden, utils.ErrorResponse("Forbidden access!", err.Error()))
	case errors.Is(err, order.ErrAdvanceInProgress):
		h.writeJSON(w, http.StatusConflict, utils.ErrorResponse("Order is being updated", err.Error()))
	case errors.As(err, &validationErr):
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Validation failed", validationErr.Error()))
	case errors.As(err, &transitionErr):
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse(
			fmt.Sprintf("Illegal status transition from %q", transitionErr.Current), transitionErr.Error()))
	case errors.As(err, &conflictErr):
		h.writeJSON(w, http.StatusConflict, utils.ErrorResponse(
			fmt.Sprintf("Order was updated concurrently, status is now %q", conflictErr.Current), conflictErr.Error()))
	default:
		h.Logger.Error("API", fmt.Sprintf("internal error: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal server error", "something went wrong"))
	}
}

// CreateOrder handles POST /payments. Open to checkout without a token,
// matching the source system's public checkout route.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	result, err := h.OrderService.PlaceOrder(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, utils.SuccessResponseWithWarnings("Order created", result, result.Warnings))
}

// ListAll handles GET /payments/all. Admin only, enforced by the router.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.OrderService.ListAll(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

// ListBuffet handles GET /payments/buffet.
func (h *Handler) ListBuffet(w http.ResponseWriter, r *http.Request) {
	orders, err := h.OrderService.ListByType(r.Context(), models.OrderBuffet)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

// ListByEmail handles GET /payments?email=. The query email must match
// the token's own email.
func (h *Handler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	identity, _ := auth.FromContext(r.Context())

	if email == "" {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Validation failed", "email query parameter is required"))
		return
	}
	if email != identity.Email {
		h.writeJSON(w, http.StatusForbidden, utils.ErrorResponse("Forbidden access!", "you can only view your own orders"))
		return
	}

	orders, err := h.OrderService.ListByEmail(r.Context(), email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

// Latest handles GET /payments/latest?email=.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	identity, _ := auth.FromContext(r.Context())

	if email == "" {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Validation failed", "email query parameter is required"))
		return
	}
	if email != identity.Email {
		h.writeJSON(w, http.StatusForbidden, utils.ErrorResponse("Forbidden access!", "you can only view your own orders"))
		return
	}

	ord, err := h.OrderService.Latest(r.Context(), email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ord)
}

// GetOrder handles GET /payments/{orderId}. Owner or admin.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	identity, _ := auth.FromContext(r.Context())

	ord, err := h.OrderService.GetOrder(r.Context(), orderID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if ord.Email != identity.Email && !identity.IsAdmin() {
		h.writeJSON(w, http.StatusForbidden, utils.ErrorResponse("Forbidden access!", "you can only view your own orders"))
		return
	}
	h.writeJSON(w, http.StatusOK, ord)
}

// Advance handles PATCH /payments/advance/{orderId}: the guarded one-step
// status move. This is the default path for staff dashboards.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	identity, _ := auth.FromContext(r.Context())

	ord, err := h.OrderService.Advance(r.Context(), orderID, identity)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ord)
}

// SetStatus handles PATCH /payments/{orderId}: the audited admin override
// that bypasses the transition table.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	identity, _ := auth.FromContext(r.Context())

	var req models.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	ord, err := h.OrderService.SetStatus(r.Context(), orderID, req.Status, identity)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ord)
}

// Cancel handles PATCH /payments/cancel/{orderId}. The body email must
// match the token email, and the order must still be cancellable.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	identity, _ := auth.FromContext(r.Context())

	var req models.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}
	if req.Email != identity.Email {
		h.writeJSON(w, http.StatusForbidden, utils.ErrorResponse("Forbidden access!", "you can only cancel your own orders"))
		return
	}

	ord, err := h.OrderService.Cancel(r.Context(), orderID, req.Email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ord)
}

// CreatePaymentIntent handles POST /create-payment-intent.
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	var req models.PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	intent, err := h.OrderService.CreatePaymentIntent(r.Context(), identity, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, models.PaymentIntentResponse{ClientSecret: intent.ClientSecret})
}

// StripeWebhook handles POST /webhook/stripe.
func (h *Handler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	if err := h.OrderService.HandleStripeWebhook(r); err != nil {
		var webhookErr *order.WebhookError
		if errors.As(err, &webhookErr) {
			h.writeJSON(w, webhookErr.StatusCode, utils.ErrorResponse(webhookErr.PublicError, webhookErr.Category))
			return
		}
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Webhook processing error", "internal"))
		return
	}
	w.WriteHeader(http.StatusOK)
}
