package models

import "fmt"

// OrderStatus is the lifecycle state of an order. The only legal forward
// path is pending -> confirmed -> preparing -> dispatched -> completed,
// with cancelled reachable from the first two states only.
type OrderStatus string

const (
	StatusPending    OrderStatus = "order pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusDispatched OrderStatus = "dispatched"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

var nextStatus = map[OrderStatus]OrderStatus{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusPreparing,
	StatusPreparing:  StatusDispatched,
	StatusDispatched: StatusCompleted,
}

// Next returns the single legal successor status. ok is false for the
// terminal statuses.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := nextStatus[s]
	return next, ok
}

// Terminal reports whether no further transitions are permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Cancellable reports whether the customer may still cancel the order.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ParseOrderStatus validates a raw status string against the six defined
// values. Nothing else is ever stored.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch s := OrderStatus(raw); s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusDispatched, StatusCompleted, StatusCancelled:
		return s, nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}
