package db

import (
	"context"

	"github.com/uptrace/bun"

	"ms-catering/internal/models"
)

type MenuStore struct {
	bun *bun.DB
}

func NewMenuStore(bunDB *bun.DB) *MenuStore {
	return &MenuStore{bun: bunDB}
}

func (s *MenuStore) InsertItem(ctx context.Context, item models.MenuItem) error {
	_, err := s.bun.NewInsert().Model(&item).Exec(ctx)
	return err
}

func (s *MenuStore) GetItemByID(ctx context.Context, menuItemID string) (*models.MenuItem, error) {
	item := new(models.MenuItem)
	err := s.bun.NewSelect().
		Model(item).
		Where("menu_item_id = ?", menuItemID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuStore) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.bun.NewSelect().
		Model(&items).
		Order("category ASC", "name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MenuStore) UpdateItem(ctx context.Context, item models.MenuItem) (bool, error) {
	res, err := s.bun.NewUpdate().
		Model(&item).
		Column("name", "recipe", "image", "category", "price").
		Where("menu_item_id = ?", item.MenuItemID).
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

func (s *MenuStore) DeleteItem(ctx context.Context, menuItemID string) (bool, error) {
	res, err := s.bun.NewDelete().
		Model((*models.MenuItem)(nil)).
		Where("menu_item_id = ?", menuItemID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
