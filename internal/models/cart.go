package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CartEntry is a pending, unpurchased item. Entries are deleted en masse
// when an order is created from the cart's contents.
type CartEntry struct {
	bun.BaseModel `bun:"table:cart_entries"`

	CartID     string    `bun:"cart_id,pk" json:"cart_id"`
	MenuItemID string    `bun:"menu_item_id,notnull" json:"menu_item_id"`
	Email      string    `bun:"email,notnull" json:"email"`
	Name       string    `bun:"name,notnull" json:"name"`
	Price      float64   `bun:"price,notnull" json:"price"`
	Quantity   int       `bun:"quantity,notnull" json:"quantity"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
}

type CartAddRequest struct {
	MenuItemID string  `json:"menu_item_id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type CartQuantityRequest struct {
	Action string `json:"action"` // "increment" or "decrement"
}
