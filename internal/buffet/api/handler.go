package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-catering/internal/buffet"
	"ms-catering/internal/logger"
	"ms-catering/internal/models"
	"ms-catering/internal/utils"
)

type Handler struct {
	BuffetService *buffet.BuffetService
	Logger        *logger.Logger
}

func NewHandler(buffetService *buffet.BuffetService, log *logger.Logger) *Handler {
	return &Handler{BuffetService: buffetService, Logger: log}
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
	case errors.Is(err, buffet.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Buffet booking not found", err.Error()))
	case errors.Is(err, buffet.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Validation failed", err.Error()))
	default:
		h.Logger.Error("API", fmt.Sprintf("internal error: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal server error", "something went wrong"))
	}
}

// Create handles POST /buffet.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.BuffetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	booking, err := h.BuffetService.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, utils.SuccessResponse("Buffet request submitted successfully", booking))
}

// List handles GET /buffet.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.BuffetService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, bookings)
}

// Delete handles DELETE /buffet/{bookingId}. Admin only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")

	if err := h.BuffetService.Delete(r.Context(), bookingID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Buffet booking deleted successfully", nil))
}
