package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ms-catering/internal/logger"
	"ms-catering/internal/stats"
	"ms-catering/internal/utils"
)

type Handler struct {
	Stats  *stats.Service
	Logger *logger.Logger
}

func NewHandler(svc *stats.Service, log *logger.Logger) *Handler {
	return &Handler{Stats: svc, Logger: log}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}

// GetOrderStats handles GET /order-stats: the public counter snapshot.
func (h *Handler) GetOrderStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Stats.GetOrderStats(r.Context())
	if err != nil {
		h.Logger.Error("STATS", fmt.Sprintf("failed to read order stats: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal server error", "something went wrong"))
		return
	}
	h.writeJSON(w, http.StatusOK, snapshot)
}

// GetAdminStats handles GET /admin-stats. Admin only, enforced by the
// router.
func (h *Handler) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Stats.GetAdminStats(r.Context())
	if err != nil {
		h.Logger.Error("STATS", fmt.Sprintf("failed to build admin stats: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal server error", "something went wrong"))
		return
	}
	h.writeJSON(w, http.StatusOK, snapshot)
}
