package handlers

import (
	"context"

	"autobook/models"
)

// stubBookingService lets each test plug in just the method it exercises.
type stubBookingService struct {
	BookSlotFunc             func(ctx context.Context, customerID, detailerID, slotID, serviceName string) (*models.Booking, error)
	GetBookingFunc           func(ctx context.Context, bookingID string) (*models.Booking, error)
	ListCustomerBookingsFunc func(ctx context.Context, customerID string) ([]models.Booking, error)
	ListDetailerBookingsFunc func(ctx context.Context, detailerID string) ([]models.Booking, error)
	UpdateStatusFunc         func(ctx context.Context, bookingID, status string) (*models.Booking, error)
	CancelBookingFunc        func(ctx context.Context, bookingID string) error
	PayAndConfirmFunc        func(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error)
}

func (s *stubBookingService) BookSlot(ctx context.Context, customerID, detailerID, slotID, serviceName string) (*models.Booking, error) {
	return s.BookSlotFunc(ctx, customerID, detailerID, slotID, serviceName)
}

func (s *stubBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.GetBookingFunc(ctx, bookingID)
}

func (s *stubBookingService) ListCustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.ListCustomerBookingsFunc(ctx, customerID)
}

func (s *stubBookingService) ListDetailerBookings(ctx context.Context, detailerID string) ([]models.Booking, error) {
	return s.ListDetailerBookingsFunc(ctx, detailerID)
}

func (s *stubBookingService) UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	return s.UpdateStatusFunc(ctx, bookingID, status)
}

func (s *stubBookingService) CancelBooking(ctx context.Context, bookingID string) error {
	return s.CancelBookingFunc(ctx, bookingID)
}

func (s *stubBookingService) ReleaseSlot(ctx context.Context, slotID string) error { return nil }

func (s *stubBookingService) PayAndConfirm(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	return s.PayAndConfirmFunc(ctx, req)
}

func (s *stubBookingService) ReleaseExpiredClaims(ctx context.Context) (int, error) { return 0, nil }

// stubGateway satisfies payment.PaymentGateway.
type stubGateway struct {
	OnboardFunc func(ctx context.Context, detailerID, email, country string) (string, error)
	IntentFunc  func(ctx context.Context, amount int64, currency, detailerID string, metadata map[string]string) (string, error)
}

func (g *stubGateway) OnboardDetailer(ctx context.Context, detailerID, email, country string) (string, error) {
	return g.OnboardFunc(ctx, detailerID, email, country)
}

func (g *stubGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency, detailerID string, metadata map[string]string) (string, error) {
	return g.IntentFunc(ctx, amount, currency, detailerID, metadata)
}
