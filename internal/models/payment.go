package models

// PaymentIntentRequest is the checkout payload for creating a Stripe
// payment intent ahead of order placement.
type PaymentIntentRequest struct {
	Price      float64 `json:"price"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
