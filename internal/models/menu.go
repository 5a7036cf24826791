package models

import (
	"time"

	"github.com/uptrace/bun"
)

type MenuItem struct {
	bun.BaseModel `bun:"table:menu_items"`

	MenuItemID string    `bun:"menu_item_id,pk" json:"menu_item_id"`
	Name       string    `bun:"name,notnull" json:"name"`
	Recipe     string    `bun:"recipe" json:"recipe"`
	Image      string    `bun:"image" json:"image"`
	Category   string    `bun:"category,notnull" json:"category"`
	Price      float64   `bun:"price,notnull" json:"price"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
}

type MenuItemRequest struct {
	Name     string  `json:"name"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}
