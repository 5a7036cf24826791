package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateCODTransactionID builds the placeholder transaction id for
// cash-on-delivery orders. The COD- prefix is how downstream tooling tells
// these apart from gateway-assigned ids.
func GenerateCODTransactionID() string {
	return fmt.Sprintf("COD-%d", time.Now().UnixMilli())
}

// GenerateBookingReference returns a short human-quotable reference for a
// buffet booking, e.g. BUF-1756444800-042913.
func GenerateBookingReference() string {
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("BUF-%d-%06d", time.Now().Unix(), randomNum.Int64())
}
