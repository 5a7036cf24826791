package buffet

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"
)

func TestGenerateConfirmationQR(t *testing.T) {
	encoded, err := GenerateConfirmationQR(confirmationPayload{
		BookingID: "booking-123",
		Reference: "BUF-1756444800-042913",
		EventDate: "2026-09-15",
		EventTime: "18:30",
		Guests:    40,
	})
	if err != nil {
		t.Fatalf("Failed to generate QR: %v", err)
	}
	if encoded == "" {
		t.Fatal("Expected non-empty QR payload")
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("QR payload is not valid base64: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("QR payload is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 256 || bounds.Dy() != 256 {
		t.Errorf("Expected a 256x256 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}
