package cart_test

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"ms-catering/internal/cart"
	"ms-catering/internal/logger"
	"ms-catering/internal/models"
)

type MockCartDB struct {
	entries      map[string]*models.CartEntry
	shouldFailOn string
	errorMsg     string
}

func NewMockCartDB() *MockCartDB {
	return &MockCartDB{entries: make(map[string]*models.CartEntry)}
}

func (m *MockCartDB) InsertEntry(_ context.Context, entry models.CartEntry) error {
	if m.shouldFailOn == "InsertEntry" {
		return errors.New(m.errorMsg)
	}
	m.entries[entry.CartID] = &entry
	return nil
}

func (m *MockCartDB) GetEntryByID(_ context.Context, cartID string) (*models.CartEntry, error) {
	entry, exists := m.entries[cartID]
	if !exists {
		return nil, sql.ErrNoRows
	}
	copied := *entry
	return &copied, nil
}

func (m *MockCartDB) GetEntryByItemAndEmail(_ context.Context, menuItemID, email string) (*models.CartEntry, error) {
	for _, entry := range m.entries {
		if entry.MenuItemID == menuItemID && entry.Email == email {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockCartDB) UpdateQuantity(_ context.Context, cartID string, quantity int) error {
	entry, exists := m.entries[cartID]
	if !exists {
		return sql.ErrNoRows
	}
	entry.Quantity = quantity
	return nil
}

func (m *MockCartDB) DeleteEntry(_ context.Context, cartID string) (bool, error) {
	if _, exists := m.entries[cartID]; !exists {
		return false, nil
	}
	delete(m.entries, cartID)
	return true, nil
}

func (m *MockCartDB) DeleteEntriesByIDs(_ context.Context, ids []string) (int, error) {
	if m.shouldFailOn == "DeleteEntriesByIDs" {
		return 0, errors.New(m.errorMsg)
	}
	deleted := 0
	for _, id := range ids {
		if _, exists := m.entries[id]; exists {
			delete(m.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MockCartDB) ListEntriesByEmail(_ context.Context, email string) ([]models.CartEntry, error) {
	var out []models.CartEntry
	for _, entry := range m.entries {
		if entry.Email == email {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func newTestService(db *MockCartDB) *cart.CartService {
	return cart.NewCartService(db, &logger.Logger{})
}

func TestFilterValidIDs(t *testing.T) {
	got := cart.FilterValidIDs([]string{"a", "b", "not valid!!", "", "unknown", "c-3_x"})
	want := []string{"a", "b", "c-3_x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if got := cart.FilterValidIDs(nil); len(got) != 0 {
		t.Errorf("Expected empty result for nil input, got %v", got)
	}
}

func TestAddNewEntry(t *testing.T) {
	db := NewMockCartDB()
	svc := newTestService(db)

	entry, err := svc.Add(context.Background(), models.CartAddRequest{
		MenuItemID: "menu-1",
		Email:      "customer@example.com",
		Name:       "Greek Salad",
		Price:      12.5,
	})
	if err != nil {
		t.Fatalf("Failed to add entry: %v", err)
	}
	if entry.Quantity != 1 {
		t.Errorf("Expected default quantity 1, got %d", entry.Quantity)
	}
	if len(db.entries) != 1 {
		t.Errorf("Expected one stored entry, got %d", len(db.entries))
	}
}

func TestAddExistingItemBumpsQuantity(t *testing.T) {
	db := NewMockCartDB()
	db.entries["c1"] = &models.CartEntry{
		CartID: "c1", MenuItemID: "menu-1", Email: "customer@example.com",
		Name: "Greek Salad", Quantity: 2,
	}
	svc := newTestService(db)

	entry, err := svc.Add(context.Background(), models.CartAddRequest{
		MenuItemID: "menu-1",
		Email:      "customer@example.com",
		Name:       "Greek Salad",
		Quantity:   3,
	})
	if err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	if entry.CartID != "c1" {
		t.Errorf("Expected the existing entry to be reused, got %s", entry.CartID)
	}
	if db.entries["c1"].Quantity != 5 {
		t.Errorf("Expected quantity 5, got %d", db.entries["c1"].Quantity)
	}
	if len(db.entries) != 1 {
		t.Errorf("Expected no duplicate entry, got %d entries", len(db.entries))
	}
}

func TestAddValidation(t *testing.T) {
	svc := newTestService(NewMockCartDB())

	cases := []models.CartAddRequest{
		{Email: "a@b.c", Name: "x"},                                   // missing item id
		{MenuItemID: "m1", Name: "x"},                                 // missing email
		{MenuItemID: "m1", Email: "a@b.c"},                            // missing name
		{MenuItemID: "m1", Email: "a@b.c", Name: "x", Price: -1},      // negative price
	}
	for i, req := range cases {
		if _, err := svc.Add(context.Background(), req); !errors.Is(err, cart.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestAdjustQuantity(t *testing.T) {
	db := NewMockCartDB()
	db.entries["c1"] = &models.CartEntry{CartID: "c1", Quantity: 1}
	svc := newTestService(db)
	ctx := context.Background()

	entry, err := svc.AdjustQuantity(ctx, "c1", "increment")
	if err != nil {
		t.Fatalf("Increment failed: %v", err)
	}
	if entry.Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", entry.Quantity)
	}

	entry, err = svc.AdjustQuantity(ctx, "c1", "decrement")
	if err != nil {
		t.Fatalf("Decrement failed: %v", err)
	}
	if entry.Quantity != 1 {
		t.Errorf("Expected quantity 1, got %d", entry.Quantity)
	}

	// Decrement clamps at 1 rather than deleting or going to zero.
	entry, err = svc.AdjustQuantity(ctx, "c1", "decrement")
	if err != nil {
		t.Fatalf("Decrement at floor failed: %v", err)
	}
	if entry.Quantity != 1 {
		t.Errorf("Expected quantity to stay at 1, got %d", entry.Quantity)
	}

	if _, err := svc.AdjustQuantity(ctx, "c1", "remove"); !errors.Is(err, cart.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for unknown action, got %v", err)
	}
	if _, err := svc.AdjustQuantity(ctx, "missing", "increment"); !errors.Is(err, cart.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteByIDsFiltersBeforeDeleting(t *testing.T) {
	db := NewMockCartDB()
	db.entries["a"] = &models.CartEntry{CartID: "a"}
	db.entries["c"] = &models.CartEntry{CartID: "c"}
	svc := newTestService(db)

	deleted, err := svc.DeleteByIDs(context.Background(), []string{"a", "", "unknown", "bad id!", "c", "ghost"})
	if err != nil {
		t.Fatalf("DeleteByIDs failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deletions, got %d", deleted)
	}
	if len(db.entries) != 0 {
		t.Errorf("Expected entries to be gone, %d remain", len(db.entries))
	}
}

func TestDeleteByIDsAllInvalidIsNoop(t *testing.T) {
	db := NewMockCartDB()
	db.shouldFailOn = "DeleteEntriesByIDs"
	db.errorMsg = "must not be called"
	svc := newTestService(db)

	deleted, err := svc.DeleteByIDs(context.Background(), []string{"", "unknown", "!!"})
	if err != nil {
		t.Fatalf("Expected no-op, got error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Expected 0 deletions, got %d", deleted)
	}
}
