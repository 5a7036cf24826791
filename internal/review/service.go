package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-catering/internal/logger"
	"ms-catering/internal/models"
)

var (
	ErrNotFound     = errors.New("review not found")
	ErrInvalidInput = errors.New("invalid review input")
	ErrAlreadyRated = errors.New("order already reviewed")
)

type DBLayer interface {
	InsertReview(ctx context.Context, rev models.Review) error
	GetReviewByOrderID(ctx context.Context, orderID string) (*models.Review, error)
	ListReviews(ctx context.Context) ([]models.Review, error)
}

type ReviewService struct {
	DB     DBLayer
	logger *logger.Logger
}

func NewReviewService(db DBLayer, log *logger.Logger) *ReviewService {
	return &ReviewService{DB: db, logger: log}
}

func (s *ReviewService) Create(ctx context.Context, email string, req models.ReviewRequest) (*models.Review, error) {
	switch {
	case req.OrderID == "":
		return nil, fmt.Errorf("%w: order_id is required", ErrInvalidInput)
	case req.Rating < 1 || req.Rating > 5:
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	case req.Review == "":
		return nil, fmt.Errorf("%w: review text is required", ErrInvalidInput)
	}

	if existing, err := s.DB.GetReviewByOrderID(ctx, req.OrderID); err == nil && existing != nil {
		return nil, ErrAlreadyRated
	}

	rev := models.Review{
		ReviewID:    uuid.NewString(),
		OrderID:     req.OrderID,
		Email:       email,
		Rating:      req.Rating,
		Review:      req.Review,
		ServiceType: req.ServiceType,
		CreatedAt:   time.Now(),
	}
	if err := s.DB.InsertReview(ctx, rev); err != nil {
		return nil, err
	}
	s.logger.Info("REVIEW", fmt.Sprintf("review %s created for order %s", rev.ReviewID, rev.OrderID))
	return &rev, nil
}

func (s *ReviewService) GetByOrderID(ctx context.Context, orderID string) (*models.Review, error) {
	rev, err := s.DB.GetReviewByOrderID(ctx, orderID)
	if err != nil {
		return nil, ErrNotFound
	}
	return rev, nil
}

func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	return s.DB.ListReviews(ctx)
}
