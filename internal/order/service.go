package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ms-catering/internal/logger"
	"ms-catering/internal/models"
	"ms-catering/internal/utils"
)

type DBLayer interface {
	CreateOrder(ctx context.Context, order models.Order) error
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	GetOrderByTransactionID(ctx context.Context, transactionID string) (*models.Order, error)
	UpdateOrderStatusIf(ctx context.Context, id string, from, to models.OrderStatus) (bool, error)
	SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByType(ctx context.Context, orderType models.OrderType) ([]models.Order, error)
	LatestOrderByEmail(ctx context.Context, email string) (*models.Order, error)
}

// CartReconciler deletes cart entries once an order has been created from
// them. Implemented by the cart service.
type CartReconciler interface {
	DeleteByIDs(ctx context.Context, ids []string) (int, error)
}

// BuffetLinker creates the companion booking record for a buffet order.
// Implemented by the buffet service.
type BuffetLinker interface {
	CreateBookingFromOrder(ctx context.Context, ord models.Order, req models.OrderRequest) (*models.BuffetBooking, error)
}

// AdvanceLock serializes concurrent status advances on the same order.
type AdvanceLock interface {
	Lock(ctx context.Context, orderID string) (bool, error)
	Unlock(ctx context.Context, orderID string) error
}

type EventPublisher interface {
	PublishOrderEvent(event models.OrderEvent) error
}

type OrderService struct {
	DB      DBLayer
	Carts   CartReconciler
	Buffets BuffetLinker
	Lock    AdvanceLock
	Events  EventPublisher
	logger  *logger.Logger
}

func NewOrderService(db DBLayer, carts CartReconciler, buffets BuffetLinker, lock AdvanceLock, events EventPublisher, log *logger.Logger) *OrderService {
	return &OrderService{DB: db, Carts: carts, Buffets: buffets, Lock: lock, Events: events, logger: log}
}

// IsBuffetOrder applies the catering heuristic from the checkout flow: an
// explicit buffet order type, any catering field present, or a catering
// package name.
func IsBuffetOrder(req models.OrderRequest) bool {
	if req.OrderType == models.OrderBuffet {
		return true
	}
	if req.EventType != "" || req.NumberOfGuests > 0 || req.EventDate != "" || req.EventTime != "" {
		return true
	}
	return strings.Contains(req.CateringType, "Catering")
}

func validateOrderRequest(req models.OrderRequest) error {
	if req.Email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if req.Price < 1 {
		return &ValidationError{Field: "price", Reason: "must be at least 1"}
	}
	if req.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	switch req.PaymentMethod {
	case "", models.PaymentOnline, models.PaymentCOD:
	default:
		return &ValidationError{Field: "payment_method", Reason: "must be online or cod"}
	}
	return nil
}

// PlaceOrder persists a new order and runs the two best-effort secondary
// writes: cart cleanup and buffet booking creation. Secondary failures are
// reported as warnings on the result, never as an error, because the
// payment already stands.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.OrderCreateResult, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentOnline
	}

	transactionID := req.TransactionID
	if transactionID == "" {
		if paymentMethod != models.PaymentCOD {
			return nil, &ValidationError{Field: "transaction_id", Reason: "is required for online payments"}
		}
		transactionID = utils.GenerateCODTransactionID()
	}

	orderType := models.OrderRegular
	if IsBuffetOrder(req) {
		orderType = models.OrderBuffet
	}

	ord := models.Order{
		OrderID:        uuid.NewString(),
		Email:          req.Email,
		TransactionID:  transactionID,
		Price:          req.Price,
		Quantity:       req.Quantity,
		Status:         models.StatusPending,
		PaymentMethod:  paymentMethod,
		OrderType:      orderType,
		ItemsName:      req.ItemsName,
		CartItemIDs:    req.CartItems,
		MenuItemIDs:    req.MenuItemIDs,
		CateringType:   req.CateringType,
		EventType:      req.EventType,
		NumberOfGuests: req.NumberOfGuests,
		EventDate:      req.EventDate,
		EventTime:      req.EventTime,
		Selected:       req.Selected,
		PackageName:    req.PackageName,
		Customer:       req.Customer,
		CreatedAt:      time.Now(),
	}

	if err := s.DB.CreateOrder(ctx, ord); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.logger.LogOrder("CREATE", ord.OrderID, fmt.Sprintf("type=%s method=%s price=%.2f", ord.OrderType, ord.PaymentMethod, ord.Price))

	s.publish(models.OrderEvent{
		Type:      models.EventOrderCreated,
		OrderID:   ord.OrderID,
		Email:     ord.Email,
		OrderType: ord.OrderType,
		Status:    ord.Status,
		Price:     ord.Price,
		Timestamp: time.Now(),
	})

	result := &models.OrderCreateResult{Order: ord}

	// Cart cleanup is best effort: the order exists regardless of what
	// happens to its cart entries.
	if len(req.CartItems) > 0 && s.Carts != nil {
		deleted, err := s.Carts.DeleteByIDs(ctx, req.CartItems)
		if err != nil {
			s.logger.Warn("ORDER", fmt.Sprintf("cart cleanup failed for order %s: %v", ord.OrderID, err))
			result.Warnings = append(result.Warnings, "order created but cart cleanup failed")
		} else {
			result.CartItemsDeleted = deleted
		}
	}

	// Same deal for the buffet booking: a failure here degrades the
	// response, the booking can be reconciled manually.
	if ord.OrderType == models.OrderBuffet && s.Buffets != nil {
		booking, err := s.Buffets.CreateBookingFromOrder(ctx, ord, req)
		if err != nil {
			s.logger.Warn("ORDER", fmt.Sprintf("buffet booking creation failed for order %s: %v", ord.OrderID, err))
			result.Warnings = append(result.Warnings, "order created but buffet booking could not be recorded")
		} else {
			result.Booking = booking
		}
	}

	return result, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	ord, err := s.DB.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ord, nil
}

// Advance moves an order exactly one step forward in the status sequence.
// Staff only. A Redis lock plus a conditional update keep two concurrent
// advances from skipping a state.
func (s *OrderService) Advance(ctx context.Context, orderID string, actor models.Identity) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	if s.Lock != nil {
		ok, err := s.Lock.Lock(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("advance lock error: %w", err)
		}
		if !ok {
			return nil, ErrAdvanceInProgress
		}
		defer func() {
			if err := s.Lock.Unlock(ctx, orderID); err != nil {
				s.logger.Warn("ORDER", fmt.Sprintf("failed to release advance lock for order %s: %v", orderID, err))
			}
		}()
	}

	ord, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, ok := ord.Status.Next()
	if !ok {
		return nil, &IllegalTransitionError{OrderID: orderID, Current: ord.Status}
	}

	applied, err := s.DB.UpdateOrderStatusIf(ctx, orderID, ord.Status, next)
	if err != nil {
		return nil, fmt.Errorf("failed to advance order %s: %w", orderID, err)
	}
	if !applied {
		current, refreshErr := s.GetOrder(ctx, orderID)
		if refreshErr != nil {
			return nil, refreshErr
		}
		return nil, &AdvanceConflictError{OrderID: orderID, Current: current.Status}
	}

	ord.Status = next
	s.logger.LogOrder("ADVANCE", orderID, fmt.Sprintf("status now %q", next))
	s.publish(models.OrderEvent{
		Type:      models.EventOrderStatusChanged,
		OrderID:   ord.OrderID,
		Email:     ord.Email,
		OrderType: ord.OrderType,
		Status:    next,
		Price:     ord.Price,
		Timestamp: time.Now(),
	})
	return ord, nil
}

// Cancel is customer-initiated and permanent. It succeeds only for the
// order's owner and only while the order is pending or confirmed.
func (s *OrderService) Cancel(ctx context.Context, orderID, requesterEmail string) (*models.Order, error) {
	ord, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if requesterEmail == "" || ord.Email != requesterEmail {
		return nil, ErrForbidden
	}
	if !ord.Status.Cancellable() {
		return nil, &IllegalTransitionError{OrderID: orderID, Current: ord.Status}
	}

	applied, err := s.DB.UpdateOrderStatusIf(ctx, orderID, ord.Status, models.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}
	if !applied {
		current, refreshErr := s.GetOrder(ctx, orderID)
		if refreshErr != nil {
			return nil, refreshErr
		}
		return nil, &IllegalTransitionError{OrderID: orderID, Current: current.Status}
	}

	ord.Status = models.StatusCancelled
	s.logger.LogOrder("CANCEL", orderID, "cancelled by owner")
	s.publish(models.OrderEvent{
		Type:      models.EventOrderCancelled,
		OrderID:   ord.OrderID,
		Email:     ord.Email,
		OrderType: ord.OrderType,
		Status:    models.StatusCancelled,
		Price:     ord.Price,
		Timestamp: time.Now(),
	})
	return ord, nil
}

// SetStatus is the audited admin override. It bypasses the transition
// table but still refuses unknown status values and non-admin callers.
func (s *OrderService) SetStatus(ctx context.Context, orderID, rawStatus string, actor models.Identity) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	status, err := models.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, &ValidationError{Field: "status", Reason: err.Error()}
	}

	ord, err := s.DB.SetOrderStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.logger.LogAudit(actor.Email, "STATUS_OVERRIDE", fmt.Sprintf("order %s forced to %q", orderID, status))
	s.publish(models.OrderEvent{
		Type:      models.EventOrderStatusChanged,
		OrderID:   ord.OrderID,
		Email:     ord.Email,
		OrderType: ord.OrderType,
		Status:    status,
		Price:     ord.Price,
		Timestamp: time.Now(),
	})
	return ord, nil
}

func (s *OrderService) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "is required"}
	}
	return s.DB.ListOrdersByEmail(ctx, email)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.DB.ListAllOrders(ctx)
}

func (s *OrderService) ListByType(ctx context.Context, orderType models.OrderType) ([]models.Order, error) {
	return s.DB.ListOrdersByType(ctx, orderType)
}

func (s *OrderService) Latest(ctx context.Context, email string) (*models.Order, error) {
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "is required"}
	}
	ord, err := s.DB.LatestOrderByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ord, nil
}

func (s *OrderService) publish(event models.OrderEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishOrderEvent(event); err != nil {
		s.logger.Warn("KAFKA", fmt.Sprintf("failed to publish %s for order %s: %v", event.Type, event.OrderID, err))
	}
}
