package menu

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
	ErrNotFound     = errors.New("menu item not found")
	ErrInvalidInput = errors.New("invalid menu item input")
)

type DBLayer interface {
	InsertItem(ctx context.Context, item models.MenuItem) error
	GetItemByID(ctx context.Context, menuItemID string) (*models.MenuItem, error)
	ListItems(ctx context.Context) ([]models.MenuItem, error)
	UpdateItem(ctx context.Context, item models.MenuItem) (bool, error)
	DeleteItem(ctx context.Context, menuItemID string) (bool, error)
}

type MenuService struct {
	DB     DBLayer
	logger *logger.Logger
}

func NewMenuService(db DBLayer, log *logger.Logger) *MenuService {
	return &MenuService{DB: db, logger: log}
}

func validateItemRequest(req models.MenuItemRequest) error {
	switch {
	case req.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case req.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	case req.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	return nil
}

func (s *MenuService) Create(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error) {
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	item := models.MenuItem{
		MenuItemID: uuid.NewString(),
		Name:       req.Name,
		Recipe:     req.Recipe,
		Image:      req.Image,
		Category:   req.Category,
		Price:      req.Price,
		CreatedAt:  time.Now(),
	}
	if err := s.DB.InsertItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("MENU", fmt.Sprintf("menu item %s (%s) created", item.MenuItemID, item.Name))
	return &item, nil
}

func (s *MenuService) Get(ctx context.Context, menuItemID string) (*models.MenuItem, error) {
	item, err := s.DB.GetItemByID(ctx, menuItemID)
	if err != nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.DB.ListItems(ctx)
}

func (s *MenuService) Update(ctx context.Context, menuItemID string, req models.MenuItemRequest) (*models.MenuItem, error) {
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	item := models.MenuItem{
		MenuItemID: menuItemID,
		Name:       req.Name,
		Recipe:     req.Recipe,
		Image:      req.Image,
		Category:   req.Category,
		Price:      req.Price,
	}
	updated, err := s.DB.UpdateItem(ctx, item)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}
	return s.DB.GetItemByID(ctx, menuItemID)
}

func (s *MenuService) Delete(ctx context.Context, menuItemID string) error {
	deleted, err := s.DB.DeleteItem(ctx, menuItemID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.logger.Info("MENU", fmt.Sprintf("menu item %s deleted", menuItemID))
	return nil
}
