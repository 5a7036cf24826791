package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-catering/internal/models"
)

type ReviewStore struct {
	bun *bun.DB
}

func NewReviewStore(bunDB *bun.DB) *ReviewStore {
	return &ReviewStore{bun: bunDB}
}

func (s *ReviewStore) InsertReview(ctx context.Context, rev models.Review) error {
	_, err := s.bun.NewInsert().Model(&rev).Exec(ctx)
	return err
}

func (s *ReviewStore) GetReviewByOrderID(ctx context.Context, orderID string) (*models.Review, error) {
	rev := new(models.Review)
	err := s.bun.NewSelect().
		Model(rev).
		Where("order_id = ?", orderID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *ReviewStore) ListReviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := s.bun.NewSelect().
		Model(&reviews).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
