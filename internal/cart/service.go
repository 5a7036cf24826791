package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"ms-catering/internal/logger"
	"ms-catering/internal/models"
)

var (
	ErrNotFound     = errors.New("cart entry not found")
	ErrInvalidInput = errors.New("invalid cart input")
)

type DBLayer interface {
	InsertEntry(ctx context.Context, entry models.CartEntry) error
	GetEntryByID(ctx context.Context, cartID string) (*models.CartEntry, error)
	GetEntryByItemAndEmail(ctx context.Context, menuItemID, email string) (*models.CartEntry, error)
	UpdateQuantity(ctx context.Context, cartID string, quantity int) error
	DeleteEntry(ctx context.Context, cartID string) (bool, error)
	DeleteEntriesByIDs(ctx context.Context, ids []string) (int, error)
	ListEntriesByEmail(ctx context.Context, email string) ([]models.CartEntry, error)
}

type CartService struct {
	DB     DBLayer
	logger *logger.Logger
}

func NewCartService(db DBLayer, log *logger.Logger) *CartService {
	return &CartService{DB: db, logger: log}
}

// Ids coming off the wire during checkout are whatever the client had
// cached; a malformed one must not abort the whole reconciliation.
var validIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FilterValidIDs drops empty, malformed and placeholder ids before they
// reach the store.
func FilterValidIDs(ids []string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == "unknown" {
			continue
		}
		if !validIDPattern.MatchString(id) {
			continue
		}
		valid = append(valid, id)
	}
	return valid
}

// Add puts an item in the user's cart. Adding an item that is already
// there bumps its quantity instead of duplicating the entry.
func (s *CartService) Add(ctx context.Context, req models.CartAddRequest) (*models.CartEntry, error) {
	if req.Email == "" || req.MenuItemID == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: menu_item_id, email and name are required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	existing, err := s.DB.GetEntryByItemAndEmail(ctx, req.MenuItemID, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += quantity
		if err := s.DB.UpdateQuantity(ctx, existing.CartID, existing.Quantity); err != nil {
			return nil, err
		}
		return existing, nil
	}

	entry := models.CartEntry{
		CartID:     uuid.NewString(),
		MenuItemID: req.MenuItemID,
		Email:      req.Email,
		Name:       req.Name,
		Price:      req.Price,
		Quantity:   quantity,
		CreatedAt:  time.Now(),
	}
	if err := s.DB.InsertEntry(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// AdjustQuantity increments or decrements an entry's quantity. Decrement
// clamps at 1; removing the item entirely is a delete, not a decrement.
func (s *CartService) AdjustQuantity(ctx context.Context, cartID, action string) (*models.CartEntry, error) {
	entry, err := s.DB.GetEntryByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch action {
	case "increment":
		entry.Quantity++
	case "decrement":
		if entry.Quantity > 1 {
			entry.Quantity--
		}
	default:
		return nil, fmt.Errorf("%w: action must be increment or decrement", ErrInvalidInput)
	}

	if err := s.DB.UpdateQuantity(ctx, cartID, entry.Quantity); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *CartService) Delete(ctx context.Context, cartID string) error {
	deleted, err := s.DB.DeleteEntry(ctx, cartID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// DeleteByIDs is the checkout reconciliation path: filter what the client
// sent, then delete the survivors in one batch. Ids that match nothing
// are not an error.
func (s *CartService) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	valid := FilterValidIDs(ids)
	if len(valid) == 0 {
		s.logger.Debug("CART", "no valid cart ids to delete")
		return 0, nil
	}

	deleted, err := s.DB.DeleteEntriesByIDs(ctx, valid)
	if err != nil {
		return 0, err
	}
	s.logger.Info("CART", fmt.Sprintf("deleted %d of %d cart entries during checkout", deleted, len(valid)))
	return deleted, nil
}

func (s *CartService) ListByEmail(ctx context.Context, email string) ([]models.CartEntry, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return s.DB.ListEntriesByEmail(ctx, email)
}
