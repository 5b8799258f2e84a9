package booking

import (
	"context"

	bookingRepo "autobook/database/repository/booking"
	catalogRepo "autobook/database/repository/catalog"
	slotRepo "autobook/database/repository/slot"
	"autobook/models"
	"autobook/services/notification"
	"autobook/services/payment"

	"go.uber.org/zap"
)

// ReleasePublisher hands the slot-release event to the reconciliation queue.
// Delivery is at least once; the consumer must be idempotent.
type ReleasePublisher interface {
	PublishSlotRelease(ctx context.Context, bookingID, slotID string) error
}

// BookingService coordinates slot claims, booking records and payment so a
// customer is only ever charged for a booking that holds a real slot.
type BookingService interface {
	BookSlot(ctx context.Context, customerID, detailerID, slotID, serviceName string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListCustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error)
	ListDetailerBookings(ctx context.Context, detailerID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
	ReleaseSlot(ctx context.Context, slotID string) error
	PayAndConfirm(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error)
	ReleaseExpiredClaims(ctx context.Context) (int, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Slots    slotRepo.SlotRepository
	Bookings bookingRepo.BookingRepository
	Catalog  catalogRepo.CatalogRepository
	Gateway  payment.PaymentGateway
	Notifier notification.NotificationService
	Releases ReleasePublisher
	Logger   *zap.Logger

	// UseTransactions selects the single-transaction claim+insert path.
	// Without it the orchestrator claims first and surfaces PartialFailure
	// if the booking insert fails afterwards.
	UseTransactions bool

	// ClaimTTLMinutes is how long a claim may sit without a matching booking
	// before the sweep releases it.
	ClaimTTLMinutes int
}
