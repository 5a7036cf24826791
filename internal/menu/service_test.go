package menu_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"ms-catering/internal/logger"
	"ms-catering/internal/menu"
	"ms-catering/internal/models"
)

type MockMenuDB struct {
	items map[string]*models.MenuItem
}

func NewMockMenuDB() *MockMenuDB {
	return &MockMenuDB{items: make(map[string]*models.MenuItem)}
}

func (m *MockMenuDB) InsertItem(_ context.Context, item models.MenuItem) error {
	m.items[item.MenuItemID] = &item
	return nil
}

func (m *MockMenuDB) GetItemByID(_ context.Context, menuItemID string) (*models.MenuItem, error) {
	item, exists := m.items[menuItemID]
	if !exists {
		return nil, sql.ErrNoRows
	}
	copied := *item
	return &copied, nil
}

func (m *MockMenuDB) ListItems(_ context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}

func (m *MockMenuDB) UpdateItem(_ context.Context, item models.MenuItem) (bool, error) {
	stored, exists := m.items[item.MenuItemID]
	if !exists {
		return false, nil
	}
	stored.Name = item.Name
	stored.Recipe = item.Recipe
	stored.Image = item.Image
	stored.Category = item.Category
	stored.Price = item.Price
	return true, nil
}

func (m *MockMenuDB) DeleteItem(_ context.Context, menuItemID string) (bool, error) {
	if _, exists := m.items[menuItemID]; !exists {
		return false, nil
	}
	delete(m.items, menuItemID)
	return true, nil
}

func newTestService(db *MockMenuDB) *menu.MenuService {
	return menu.NewMenuService(db, &logger.Logger{})
}

func TestCreateMenuItem(t *testing.T) {
	db := NewMockMenuDB()
	svc := newTestService(db)

	item, err := svc.Create(context.Background(), models.MenuItemRequest{
		Name:     "Greek Salad",
		Category: "salad",
		Price:    12.5,
	})
	if err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}
	if item.MenuItemID == "" {
		t.Error("Expected a generated item id")
	}
	if len(db.items) != 1 {
		t.Errorf("Expected one stored item, got %d", len(db.items))
	}
}

func TestCreateMenuItemValidation(t *testing.T) {
	svc := newTestService(NewMockMenuDB())
	ctx := context.Background()

	cases := []models.MenuItemRequest{
		{Category: "salad", Price: 10},
		{Name: "Greek Salad", Price: 10},
		{Name: "Greek Salad", Category: "salad", Price: 0},
		{Name: "Greek Salad", Category: "salad", Price: -5},
	}
	for i, req := range cases {
		if _, err := svc.Create(ctx, req); !errors.Is(err, menu.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestUpdateMenuItem(t *testing.T) {
	db := NewMockMenuDB()
	db.items["m1"] = &models.MenuItem{MenuItemID: "m1", Name: "Old", Category: "salad", Price: 10}
	svc := newTestService(db)

	item, err := svc.Update(context.Background(), "m1", models.MenuItemRequest{
		Name:     "New Name",
		Category: "salad",
		Price:    11,
	})
	if err != nil {
		t.Fatalf("Failed to update item: %v", err)
	}
	if item.Name != "New Name" || item.Price != 11 {
		t.Errorf("Update not applied: %+v", item)
	}

	if _, err := svc.Update(context.Background(), "missing", models.MenuItemRequest{
		Name: "x", Category: "y", Price: 1,
	}); !errors.Is(err, menu.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMenuItem(t *testing.T) {
	db := NewMockMenuDB()
	db.items["m1"] = &models.MenuItem{MenuItemID: "m1"}
	svc := newTestService(db)
	ctx := context.Background()

	if err := svc.Delete(ctx, "m1"); err != nil {
		t.Fatalf("Failed to delete item: %v", err)
	}
	if err := svc.Delete(ctx, "m1"); !errors.Is(err, menu.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}
