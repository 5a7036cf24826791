package models

import (
	"time"

	"github.com/uptrace/bun"
)

// BuffetBooking holds the catering-specific details for a buffet order.
// Its lifecycle is tied to, but not identical with, the originating order:
// the booking can be deleted while the order persists.
type BuffetBooking struct {
	bun.BaseModel `bun:"table:buffet_bookings"`

	BookingID      string   `bun:"booking_id,pk" json:"booking_id"`
	Name           string   `bun:"name,notnull" json:"name"`
	Email          string   `bun:"email,notnull" json:"email"`
	PhoneNumber    string   `bun:"phone_number,notnull" json:"phone_number"`
	EventType      string   `bun:"event_type,notnull" json:"event_type"`
	NumberOfGuests int      `bun:"number_of_guests,notnull" json:"number_of_guests"`
	EventDate      string   `bun:"event_date,notnull" json:"event_date"`
	EventTime      string   `bun:"event_time,notnull" json:"event_time"`
	PackageName    string   `bun:"package_name" json:"package_name"`
	Selected       []string `bun:"selected" json:"selected,omitempty"`

	SpecialRequests string `bun:"special_requests,nullzero" json:"special_requests,omitempty"`
	IsVeg           bool   `bun:"is_veg" json:"is_veg"`

	// Back-reference to the order that paid for this booking. Empty for
	// bookings submitted directly, before checkout.
	OrderID       string        `bun:"order_id,nullzero" json:"order_id,omitempty"`
	Paid          bool          `bun:"paid" json:"paid"`
	PaymentMethod PaymentMethod `bun:"payment_method,nullzero" json:"payment_method,omitempty"`

	// Base64 PNG of the booking-reference QR, generated at creation.
	ConfirmationQR string `bun:"confirmation_qr,nullzero" json:"confirmation_qr,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

type BuffetRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	PhoneNumber     string   `json:"phone_number"`
	EventType       string   `json:"event_type"`
	NumberOfGuests  int      `json:"number_of_guests"`
	EventDate       string   `json:"event_date"`
	EventTime       string   `json:"event_time"`
	PackageName     string   `json:"package_name"`
	Selected        []string `json:"selected"`
	SpecialRequests string   `json:"special_requests"`
	IsVeg           bool     `json:"is_veg"`
	OrderID         string   `json:"order_id"`
	Paid            bool     `json:"paid"`
	PaymentMethod   string   `json:"payment_method"`
}
