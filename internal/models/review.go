package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Review is customer feedback for a completed order. One review per order.
type Review struct {
	bun.BaseModel `bun:"table:reviews"`

	ReviewID    string    `bun:"review_id,pk" json:"review_id"`
	OrderID     string    `bun:"order_id,notnull,unique" json:"order_id"`
	Email       string    `bun:"email,notnull" json:"email"`
	Rating      int       `bun:"rating,notnull" json:"rating"`
	Review      string    `bun:"review,notnull" json:"review"`
	ServiceType string    `bun:"service_type" json:"service_type"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
}

type ReviewRequest struct {
	OrderID     string `json:"order_id"`
	Rating      int    `json:"rating"`
	Review      string `json:"review"`
	ServiceType string `json:"service_type"`
}
