package buffet_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"ms-catering/internal/buffet"
	"ms-catering/internal/logger"
	"ms-catering/internal/models"
)

type MockBuffetDB struct {
	bookings     map[string]*models.BuffetBooking
	shouldFailOn string
	errorMsg     string
}

func NewMockBuffetDB() *MockBuffetDB {
	return &MockBuffetDB{bookings: make(map[string]*models.BuffetBooking)}
}

func (m *MockBuffetDB) InsertBooking(_ context.Context, booking models.BuffetBooking) error {
	if m.shouldFailOn == "InsertBooking" {
		return errors.New(m.errorMsg)
	}
	m.bookings[booking.BookingID] = &booking
	return nil
}

func (m *MockBuffetDB) GetBookingByID(_ context.Context, bookingID string) (*models.BuffetBooking, error) {
	booking, exists := m.bookings[bookingID]
	if !exists {
		return nil, sql.ErrNoRows
	}
	copied := *booking
	return &copied, nil
}

func (m *MockBuffetDB) ListBookings(_ context.Context) ([]models.BuffetBooking, error) {
	var out []models.BuffetBooking
	for _, booking := range m.bookings {
		out = append(out, *booking)
	}
	return out, nil
}

func (m *MockBuffetDB) DeleteBooking(_ context.Context, bookingID string) (bool, error) {
	if _, exists := m.bookings[bookingID]; !exists {
		return false, nil
	}
	delete(m.bookings, bookingID)
	return true, nil
}

func newTestService(db *MockBuffetDB) *buffet.BuffetService {
	return buffet.NewBuffetService(db, &logger.Logger{})
}

func validBookingRequest() models.BuffetRequest {
	return models.BuffetRequest{
		Name:           "Priya Sharma",
		Email:          "priya@example.com",
		PhoneNumber:    "+91-9876543210",
		EventType:      "Wedding",
		NumberOfGuests: 120,
		EventDate:      "2026-10-02",
		EventTime:      "19:00",
		PackageName:    "Premium Veg",
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc := newTestService(NewMockBuffetDB())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.BuffetRequest)
	}{
		{"missing name", func(r *models.BuffetRequest) { r.Name = "" }},
		{"missing email", func(r *models.BuffetRequest) { r.Email = "" }},
		{"missing phone", func(r *models.BuffetRequest) { r.PhoneNumber = "" }},
		{"missing event type", func(r *models.BuffetRequest) { r.EventType = "" }},
		{"zero guests", func(r *models.BuffetRequest) { r.NumberOfGuests = 0 }},
		{"missing date", func(r *models.BuffetRequest) { r.EventDate = "" }},
		{"missing time", func(r *models.BuffetRequest) { r.EventTime = "" }},
	}

	for _, tc := range cases {
		req := validBookingRequest()
		tc.mutate(&req)
		if _, err := svc.Create(ctx, req); !errors.Is(err, buffet.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCreateBookingAttachesQR(t *testing.T) {
	svc := newTestService(NewMockBuffetDB())

	booking, err := svc.Create(context.Background(), validBookingRequest())
	if err != nil {
		t.Fatalf("Failed to create booking: %v", err)
	}
	if booking.ConfirmationQR == "" {
		t.Error("Expected a confirmation QR on the booking")
	}
	if booking.BookingID == "" {
		t.Error("Expected a generated booking id")
	}
}

func TestCreateBookingFromOrderOnlinePaid(t *testing.T) {
	db := NewMockBuffetDB()
	svc := newTestService(db)

	ord := models.Order{
		OrderID:       "order-1",
		Email:         "priya@example.com",
		PaymentMethod: models.PaymentOnline,
		CreatedAt:     time.Now(),
	}
	req := models.OrderRequest{
		EventType:       "Wedding",
		NumberOfGuests:  120,
		EventDate:       "2026-10-02",
		EventTime:       "19:00",
		SpecialRequests: "jain thali counter",
		IsVeg:           true,
		Customer:        models.CustomerInfo{Name: "Priya Sharma", Phone: "+91-9876543210"},
	}

	booking, err := svc.CreateBookingFromOrder(context.Background(), ord, req)
	if err != nil {
		t.Fatalf("Failed to link booking: %v", err)
	}
	if !booking.Paid {
		t.Error("Expected online order to be marked paid")
	}
	if booking.OrderID != "order-1" {
		t.Errorf("Expected back-reference to order-1, got %q", booking.OrderID)
	}
	if booking.SpecialRequests != "jain thali counter" || !booking.IsVeg {
		t.Error("Expected catering extras to be carried from the request")
	}
	if len(db.bookings) != 1 {
		t.Errorf("Expected one stored booking, got %d", len(db.bookings))
	}
}

func TestCreateBookingFromOrderCODUnpaid(t *testing.T) {
	svc := newTestService(NewMockBuffetDB())

	ord := models.Order{
		OrderID:       "order-2",
		Email:         "priya@example.com",
		PaymentMethod: models.PaymentCOD,
		CreatedAt:     time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
	}

	booking, err := svc.CreateBookingFromOrder(context.Background(), ord, models.OrderRequest{})
	if err != nil {
		t.Fatalf("Failed to link booking: %v", err)
	}
	if booking.Paid {
		t.Error("Expected COD order to be unpaid until delivery")
	}

	// Sparse requests fall back to workable defaults.
	if booking.Name != "priya@example.com" {
		t.Errorf("Expected email fallback for name, got %q", booking.Name)
	}
	if booking.EventType != "Catering Event" {
		t.Errorf("Expected default event type, got %q", booking.EventType)
	}
	if booking.NumberOfGuests != 1 {
		t.Errorf("Expected guest floor of 1, got %d", booking.NumberOfGuests)
	}
	if booking.EventDate != "2026-08-29" {
		t.Errorf("Expected order date fallback, got %q", booking.EventDate)
	}
}

func TestDeleteBooking(t *testing.T) {
	db := NewMockBuffetDB()
	db.bookings["b1"] = &models.BuffetBooking{BookingID: "b1"}
	svc := newTestService(db)
	ctx := context.Background()

	if err := svc.Delete(ctx, "b1"); err != nil {
		t.Fatalf("Failed to delete booking: %v", err)
	}
	if err := svc.Delete(ctx, "b1"); !errors.Is(err, buffet.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}
