package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-catering/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) InsertBooking(ctx context.Context, booking models.BuffetBooking) error {
	_, err := d.Bun.NewInsert().Model(&booking).Exec(ctx)
	return err
}

func (d *DB) GetBookingByID(ctx context.Context, bookingID string) (*models.BuffetBooking, error) {
	var booking models.BuffetBooking
	err := d.Bun.NewSelect().
		Model(&booking).
		Where("booking_id = ?", bookingID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (d *DB) ListBookings(ctx context.Context) ([]models.BuffetBooking, error) {
	var bookings []models.BuffetBooking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (d *DB) DeleteBooking(ctx context.Context, bookingID string) (bool, error) {
	res, err := d.Bun.NewDelete().
		Model((*models.BuffetBooking)(nil)).
		Where("booking_id = ?", bookingID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
