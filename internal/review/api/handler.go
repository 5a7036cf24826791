package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ms-catering/internal/auth"
	"ms-catering/internal/logger"
	"ms-catering/internal/models"
	"ms-catering/internal/review"
)

type Handler struct {
	Reviews *review.ReviewService
	Logger  *logger.Logger
}

func NewHandler(svc *review.ReviewService, log *logger.Logger) *Handler {
	return &Handler{Reviews: svc, Logger: log}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, review.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "review not found"})
	case errors.Is(err, review.ErrAlreadyRated):
		c.JSON(http.StatusConflict, gin.H{"message": "order already reviewed"})
	case errors.Is(err, review.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review", "error": err.Error()})
	default:
		h.Logger.Error("REVIEW", "review operation failed: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func (h *Handler) CreateReview(c *gin.Context) {
	identity, ok := auth.GinIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "error": err.Error()})
		return
	}

	rev, err := h.Reviews.Create(c.Request.Context(), identity.Email, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// ListReviews is public so the storefront can show testimonials.
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.Reviews.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) GetReviewByOrder(c *gin.Context) {
	rev, err := h.Reviews.GetByOrderID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rev)
}
