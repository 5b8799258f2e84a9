package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "autobook/database/repository/booking"
	catalogRepo "autobook/database/repository/catalog"
	slotRepo "autobook/database/repository/slot"
	"autobook/models"
	"autobook/utils"
)

// BookSlot runs the core workflow: validate the slot, claim it, and create
// the pending booking. AlreadyBooked is an expected race loss, not a bug;
// the client re-fetches availability and picks again.
func (s *DefaultBookingService) BookSlot(ctx context.Context, customerID, detailerID, slotID, serviceName string) (*models.Booking, error) {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, utils.NewServiceError(utils.CodeNotFound, fmt.Sprintf("slot %s not found", slotID))
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", slotID, err)
	}
	if slot.DetailerID != detailerID {
		return nil, utils.NewServiceError(utils.CodeNotFound, fmt.Sprintf("slot %s does not belong to detailer %s", slotID, detailerID))
	}
	if slot.Booked() {
		return nil, utils.NewServiceError(utils.CodeAlreadyBooked, "slot no longer available")
	}

	// Snapshot the catalog entry by value; a missing entry books at zero
	// with a placeholder rather than failing the whole request.
	price := 0.0
	if s.Catalog != nil {
		if svc, err := s.Catalog.GetByName(ctx, detailerID, serviceName); err == nil {
			price = svc.Price
		} else if !errors.Is(err, catalogRepo.ErrNotFound) {
			s.Logger.Warn("catalog lookup failed, booking without price snapshot",
				zap.String("detailerId", detailerID), zap.String("service", serviceName), zap.Error(err))
		}
	}

	b := models.Booking{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		DetailerID:  detailerID,
		Service:     serviceName,
		Price:       price,
		BookingTime: slot.StartTime,
		Status:      models.BookingStatusPending,
		SlotID:      slotID,
		CreatedAt:   time.Now(),
	}

	if s.UseTransactions {
		if err := s.Bookings.CreateWithClaim(ctx, b); err != nil {
			return nil, mapClaimErr(err)
		}
	} else {
		if err := s.Slots.Claim(ctx, slotID, customerID); err != nil {
			return nil, mapClaimErr(err)
		}
		if err := s.Bookings.Create(ctx, b); err != nil {
			// The claim committed but the booking insert did not. The slot
			// stays held until the stale-claim sweep frees it; surface a
			// distinct code so operators can tell this from a race loss.
			s.Logger.Error("claim succeeded but booking insert failed",
				zap.String("slotId", slotID), zap.String("customerId", customerID), zap.Error(err))
			return nil, utils.WrapServiceError(utils.CodePartialFailure, "slot claimed but booking not recorded", err)
		}
	}

	s.notifyDetailer(ctx, &b)
	return &b, nil
}

func mapClaimErr(err error) error {
	switch {
	case errors.Is(err, slotRepo.ErrNotFound):
		return utils.WrapServiceError(utils.CodeNotFound, "slot not found", err)
	case errors.Is(err, slotRepo.ErrAlreadyBooked):
		return utils.WrapServiceError(utils.CodeAlreadyBooked, "slot no longer available", err)
	default:
		return err
	}
}

// PayAndConfirm opens the checkout: resolves the detailer's connected
// account and returns a PaymentIntent client secret. Confirmation happens
// client-side against Stripe; the booking stays pending until the detailer
// confirms it.
func (s *DefaultBookingService) PayAndConfirm(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	detailerID := req.Metadata["detailerId"]
	if detailerID == "" {
		return nil, utils.NewServiceError(utils.CodeNotFound, "metadata.detailerId is required")
	}

	secret, err := s.Gateway.CreatePaymentIntent(ctx, req.Amount, req.Currency, detailerID, req.Metadata)
	if err != nil {
		return nil, err
	}
	return &models.PaymentIntentResponse{ClientSecret: secret}, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, utils.NewServiceError(utils.CodeNotFound, "booking not found")
	}
	return b, err
}

func (s *DefaultBookingService) ListCustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.Bookings.ListByCustomer(ctx, customerID)
}

func (s *DefaultBookingService) ListDetailerBookings(ctx context.Context, detailerID string) ([]models.Booking, error) {
	return s.Bookings.ListByDetailer(ctx, detailerID)
}

// UpdateStatus drives the pending → confirmed → completed lifecycle. Moving
// to confirmed is a detailer decision, deliberately separate from payment
// success.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	updated, err := s.Bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NewServiceError(utils.CodeNotFound, "booking not found")
		}
		return nil, err
	}

	if status == models.BookingStatusConfirmed {
		s.notifyCustomer(ctx, updated, "Booking Confirmed!",
			fmt.Sprintf("Your booking for %s has been confirmed.", updated.Service))
	}
	return updated, nil
}

// CancelBooking deletes the booking and publishes the slot-release event.
// The release itself happens asynchronously in the reconciliation worker so
// a queue hiccup never strands the deletion half-done from the caller's view.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) error {
	deleted, err := s.Bookings.Delete(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return utils.NewServiceError(utils.CodeNotFound, "booking not found")
		}
		return fmt.Errorf("failed to delete booking %s: %w", bookingID, err)
	}

	if deleted.SlotID != "" {
		if err := s.Releases.PublishSlotRelease(ctx, deleted.ID, deleted.SlotID); err != nil {
			// The sweep will still free the slot; log and move on.
			s.Logger.Error("failed to enqueue slot release",
				zap.String("bookingId", deleted.ID), zap.String("slotId", deleted.SlotID), zap.Error(err))
		}
	}

	s.notifyCustomer(ctx, deleted, "Booking Cancelled",
		fmt.Sprintf("Your booking for %s has been cancelled.", deleted.Service))
	return nil
}

func (s *DefaultBookingService) notifyDetailer(ctx context.Context, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendPush(ctx, b.DetailerID, "New Booking Request!",
		fmt.Sprintf("You have a new booking for %s.", b.Service)); err != nil {
		s.Logger.Warn("detailer push failed", zap.String("detailerId", b.DetailerID), zap.Error(err))
	}
}

func (s *DefaultBookingService) notifyCustomer(ctx context.Context, b *models.Booking, title, body string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendPush(ctx, b.CustomerID, title, body); err != nil {
		s.Logger.Warn("customer push failed", zap.String("customerId", b.CustomerID), zap.Error(err))
	}
}
