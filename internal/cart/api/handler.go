package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-catering/internal/auth"
	"ms-catering/internal/cart"
	"ms-catering/internal/logger"
	"ms-catering/internal/models"
	"ms-catering/internal/utils"
)

type Handler struct {
	CartService *cart.CartService
	Logger      *logger.Logger
}

func NewHandler(cartService *cart.CartService, log *logger.Logger) *Handler {
	return &Handler{CartService: cartService, Logger: log}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Cart entry not found", err.Error()))
	case errors.Is(err, cart.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Validation failed", err.Error()))
	default:
		h.Logger.Error("API", fmt.Sprintf("internal error: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal server error", "something went wrong"))
	}
}

// Add handles POST /carts. The entry is always created under the token's
// own email.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	var req models.CartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}
	req.Email = identity.Email

	entry, err := h.CartService.Add(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, entry)
}

// List handles GET /carts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	entries, err := h.CartService.ListByEmail(r.Context(), identity.Email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// AdjustQuantity handles PATCH /carts/{cartId} with an increment or
// decrement action.
func (h *Handler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")
	identity, _ := auth.FromContext(r.Context())

	var req models.CartQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	if err := h.requireOwner(r, cartID, identity.Email, w); err != nil {
		return
	}

	entry, err := h.CartService.AdjustQuantity(r.Context(), cartID, req.Action)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /carts/{cartId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")
	identity, _ := auth.FromContext(r.Context())

	if err := h.requireOwner(r, cartID, identity.Email, w); err != nil {
		return
	}

	if err := h.CartService.Delete(r.Context(), cartID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireOwner rejects mutations of another user's cart entry. The error
// response is already written when a non-nil error comes back.
func (h *Handler) requireOwner(r *http.Request, cartID, email string, w http.ResponseWriter) error {
	entry, err := h.CartService.DB.GetEntryByID(r.Context(), cartID)
	if err != nil {
		h.writeServiceError(w, cart.ErrNotFound)
		return err
	}
	if entry.Email != email {
		h.writeJSON(w, http.StatusForbidden, utils.ErrorResponse("Forbidden access!", "you can only modify your own cart"))
		return errors.New("ownership mismatch")
	}
	return nil
}
