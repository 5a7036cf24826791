package buffet

import (
	"encoding/base64"
	"encoding/json"

	"github.com/skip2/go-qrcode"
)

// confirmationPayload is what the front desk scans when the customer
// arrives for the event.
type confirmationPayload struct {
	BookingID string `json:"booking_id"`
	Reference string `json:"reference"`
	EventDate string `json:"event_date"`
	EventTime string `json:"event_time"`
	Guests    int    `json:"guests"`
}

// GenerateConfirmationQR renders the booking confirmation as a base64
// PNG suitable for embedding in an email or dashboard.
func GenerateConfirmationQR(payload confirmationPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
