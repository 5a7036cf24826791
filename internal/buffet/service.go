package buffet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ms-catering/internal/logger"
	"ms-catering/internal/models"
	"ms-catering/internal/utils"
)

var (
	ErrNotFound     = errors.New("buffet booking not found")
	ErrInvalidInput = errors.New("invalid buffet booking input")
)

type DBLayer interface {
	InsertBooking(ctx context.Context, booking models.BuffetBooking) error
	GetBookingByID(ctx context.Context, bookingID string) (*models.BuffetBooking, error)
	ListBookings(ctx context.Context) ([]models.BuffetBooking, error)
	DeleteBooking(ctx context.Context, bookingID string) (bool, error)
}

type BuffetService struct {
	DB     DBLayer
	logger *logger.Logger
}

func NewBuffetService(db DBLayer, log *logger.Logger) *BuffetService {
	return &BuffetService{DB: db, logger: log}
}

func validateBookingRequest(req models.BuffetRequest) error {
	switch {
	case req.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case req.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	case req.PhoneNumber == "":
		return fmt.Errorf("%w: phone_number is required", ErrInvalidInput)
	case req.EventType == "":
		return fmt.Errorf("%w: event_type is required", ErrInvalidInput)
	case req.NumberOfGuests < 1:
		return fmt.Errorf("%w: number_of_guests must be at least 1", ErrInvalidInput)
	case req.EventDate == "":
		return fmt.Errorf("%w: event_date is required", ErrInvalidInput)
	case req.EventTime == "":
		return fmt.Errorf("%w: event_time is required", ErrInvalidInput)
	}
	return nil
}

// Create records a booking submitted directly through the buffet form,
// before any payment exists.
func (s *BuffetService) Create(ctx context.Context, req models.BuffetRequest) (*models.BuffetBooking, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	booking := models.BuffetBooking{
		BookingID:       uuid.NewString(),
		Name:            req.Name,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		EventType:       req.EventType,
		NumberOfGuests:  req.NumberOfGuests,
		EventDate:       req.EventDate,
		EventTime:       req.EventTime,
		PackageName:     req.PackageName,
		Selected:        req.Selected,
		SpecialRequests: req.SpecialRequests,
		IsVeg:           req.IsVeg,
		OrderID:         req.OrderID,
		Paid:            req.Paid,
		PaymentMethod:   models.PaymentMethod(req.PaymentMethod),
		CreatedAt:       time.Now(),
	}
	s.attachQR(&booking)

	if err := s.DB.InsertBooking(ctx, booking); err != nil {
		return nil, err
	}
	s.logger.Info("BUFFET", fmt.Sprintf("booking %s recorded for %s (%d guests, %s)", booking.BookingID, booking.EventType, booking.NumberOfGuests, booking.EventDate))
	return &booking, nil
}

// CreateBookingFromOrder is the linker: once a buffet order is durably
// created, record its companion booking. Catering extras that never land
// on the order (special requests, veg preference) come from the original
// request payload. Paid mirrors the payment method: online paid now, cash
// pays at delivery.
func (s *BuffetService) CreateBookingFromOrder(ctx context.Context, ord models.Order, req models.OrderRequest) (*models.BuffetBooking, error) {
	booking := models.BuffetBooking{
		BookingID:       uuid.NewString(),
		Name:            orDefault(req.Customer.Name, ord.Email),
		Email:           ord.Email,
		PhoneNumber:     orDefault(req.Customer.Phone, req.Customer.PostalCode),
		EventType:       orDefault(req.EventType, "Catering Event"),
		NumberOfGuests:  maxInt(req.NumberOfGuests, 1),
		EventDate:       orDefault(req.EventDate, ord.CreatedAt.Format("2006-01-02")),
		EventTime:       orDefault(req.EventTime, "12:00"),
		PackageName:     orDefault(req.PackageName, "Catering Package"),
		Selected:        req.Selected,
		SpecialRequests: req.SpecialRequests,
		IsVeg:           req.IsVeg,
		OrderID:         ord.OrderID,
		Paid:            ord.PaymentMethod == models.PaymentOnline,
		PaymentMethod:   ord.PaymentMethod,
		CreatedAt:       time.Now(),
	}
	s.attachQR(&booking)

	if err := s.DB.InsertBooking(ctx, booking); err != nil {
		return nil, err
	}
	s.logger.Info("BUFFET", fmt.Sprintf("booking %s linked to order %s (paid=%t)", booking.BookingID, ord.OrderID, booking.Paid))
	return &booking, nil
}

// attachQR adds the confirmation QR. A QR failure never blocks the
// booking itself.
func (s *BuffetService) attachQR(booking *models.BuffetBooking) {
	qr, err := GenerateConfirmationQR(confirmationPayload{
		BookingID: booking.BookingID,
		Reference: utils.GenerateBookingReference(),
		EventDate: booking.EventDate,
		EventTime: booking.EventTime,
		Guests:    booking.NumberOfGuests,
	})
	if err != nil {
		s.logger.Warn("BUFFET", fmt.Sprintf("failed to generate confirmation QR for booking %s: %v", booking.BookingID, err))
		return
	}
	booking.ConfirmationQR = qr
}

func (s *BuffetService) List(ctx context.Context) ([]models.BuffetBooking, error) {
	return s.DB.ListBookings(ctx)
}

// Delete removes a booking by id. Deleting by name was how the source
// system did it; ids are collision-free, names are not.
func (s *BuffetService) Delete(ctx context.Context, bookingID string) error {
	deleted, err := s.DB.DeleteBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.logger.Info("BUFFET", fmt.Sprintf("booking %s deleted", bookingID))
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
