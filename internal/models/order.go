package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCOD    PaymentMethod = "cod"
)

type OrderType string

const (
	OrderRegular OrderType = "regular"
	OrderBuffet  OrderType = "buffet"
)

type CustomerInfo struct {
	Name       string `bun:"name" json:"name"`
	Address    string `bun:"address" json:"address"`
	City       string `bun:"city" json:"city"`
	State      string `bun:"state" json:"state"`
	PostalCode string `bun:"postal_code" json:"postal_code"`
	Phone      string `bun:"phone" json:"phone"`
}

// Order is the persisted record of a placed purchase, whether paid online
// or collected on delivery.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	OrderID       string        `bun:"order_id,pk" json:"order_id"`
	Email         string        `bun:"email,notnull" json:"email"`
	TransactionID string        `bun:"transaction_id" json:"transaction_id"`
	Price         float64       `bun:"price,notnull" json:"price"`
	Quantity      int           `bun:"quantity,notnull" json:"quantity"`
	Status        OrderStatus   `bun:"status,notnull" json:"status"`
	PaymentMethod PaymentMethod `bun:"payment_method,notnull" json:"payment_method"`
	OrderType     OrderType     `bun:"order_type,notnull" json:"order_type"`

	ItemsName   []string `bun:"items_name" json:"items_name,omitempty"`
	CartItemIDs []string `bun:"cart_item_ids" json:"cart_item_ids,omitempty"`
	MenuItemIDs []string `bun:"menu_item_ids" json:"menu_item_ids,omitempty"`

	// Catering fields, set only for buffet orders.
	CateringType   string   `bun:"catering_type,nullzero" json:"catering_type,omitempty"`
	EventType      string   `bun:"event_type,nullzero" json:"event_type,omitempty"`
	NumberOfGuests int      `bun:"number_of_guests,nullzero" json:"number_of_guests,omitempty"`
	EventDate      string   `bun:"event_date,nullzero" json:"event_date,omitempty"`
	EventTime      string   `bun:"event_time,nullzero" json:"event_time,omitempty"`
	Selected       []string `bun:"selected" json:"selected,omitempty"`
	PackageName    string   `bun:"package_name,nullzero" json:"package_name,omitempty"`

	Customer CustomerInfo `bun:"embed:customer_" json:"customer_info"`

	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

// OrderRequest is the validated checkout payload. Unknown fields are
// rejected at decode time; nothing is merged into the order blindly.
type OrderRequest struct {
	Email         string        `json:"email"`
	TransactionID string        `json:"transaction_id"`
	Price         float64       `json:"price"`
	Quantity      int           `json:"quantity"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	OrderType     OrderType     `json:"order_type"`

	ItemsName   []string `json:"items_name"`
	CartItems   []string `json:"cart_items"`
	MenuItemIDs []string `json:"menu_items"`

	CateringType   string   `json:"catering_type"`
	EventType      string   `json:"event_type"`
	NumberOfGuests int      `json:"number_of_guests"`
	EventDate      string   `json:"event_date"`
	EventTime      string   `json:"event_time"`
	Selected       []string `json:"selected"`
	PackageName    string   `json:"package_name"`

	// Forwarded to the buffet booking only; never persisted on the order.
	SpecialRequests string `json:"special_requests"`
	IsVeg           bool   `json:"is_veg"`

	Customer CustomerInfo `json:"customer_info"`
}

// OrderCreateResult is the response for a successful checkout. Warnings
// carry degraded secondary-write outcomes (cart cleanup, buffet linking)
// that never fail the order itself.
type OrderCreateResult struct {
	Order            Order          `json:"order"`
	CartItemsDeleted int            `json:"cart_items_deleted"`
	Booking          *BuffetBooking `json:"booking,omitempty"`
	Warnings         []string       `json:"-"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type CancelRequest struct {
	Email string `json:"email"`
}

// OrderEvent is the Kafka payload for order lifecycle changes.
type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   string      `json:"order_id"`
	Email     string      `json:"email"`
	OrderType OrderType   `json:"order_type"`
	Status    OrderStatus `json:"status"`
	Price     float64     `json:"price"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
)
