package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-catering/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) InsertEntry(ctx context.Context, entry models.CartEntry) error {
	_, err := d.Bun.NewInsert().Model(&entry).Exec(ctx)
	return err
}

func (d *DB) GetEntryByID(ctx context.Context, cartID string) (*models.CartEntry, error) {
	var entry models.CartEntry
	err := d.Bun.NewSelect().
		Model(&entry).
		Where("cart_id = ?", cartID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (d *DB) GetEntryByItemAndEmail(ctx context.Context, menuItemID, email string) (*models.CartEntry, error) {
	var entry models.CartEntry
	err := d.Bun.NewSelect().
		Model(&entry).
		Where("menu_item_id = ?", menuItemID).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (d *DB) UpdateQuantity(ctx context.Context, cartID string, quantity int) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.CartEntry)(nil)).
		Set("quantity = ?", quantity).
		Where("cart_id = ?", cartID).
		Exec(ctx)
	return err
}

func (d *DB) DeleteEntry(ctx context.Context, cartID string) (bool, error) {
	res, err := d.Bun.NewDelete().
		Model((*models.CartEntry)(nil)).
		Where("cart_id = ?", cartID).
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

// DeleteEntriesByIDs removes all matching entries in one statement and
// reports how many actually existed.
func (d *DB) DeleteEntriesByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := d.Bun.NewDelete().
		Model((*models.CartEntry)(nil)).
		Where("cart_id IN (?)", bun.In(ids)).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (d *DB) ListEntriesByEmail(ctx context.Context, email string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	err := d.Bun.NewSelect().
		Model(&entries).
		Where("email = ?", email).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
