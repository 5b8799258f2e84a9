// File: services/detailer/slots.go
package detailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	slotRepo "autobook/database/repository/slot"
	"autobook/models"
	"autobook/utils"
)

// CreateSlots publishes availability windows. Every window must have
// start < end; a single bad window fails the whole batch before anything
// is written.
func (s *DefaultDetailerService) CreateSlots(ctx context.Context, detailerID string, inputs []models.SlotInput) ([]string, error) {
	for _, in := range inputs {
		if !in.StartTime.Before(in.EndTime) {
			return nil, utils.NewServiceError(utils.CodeInvalidRange,
				fmt.Sprintf("slot start %s must be before end %s", in.StartTime.Format(time.RFC3339), in.EndTime.Format(time.RFC3339)))
		}
	}

	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := s.Slots.Create(ctx, models.Slot{
			DetailerID: detailerID,
			StartTime:  in.StartTime,
			EndTime:    in.EndTime,
		})
		if err != nil {
			return ids, fmt.Errorf("failed to create slot: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *DefaultDetailerService) ListSlots(ctx context.Context, detailerID string) ([]models.Slot, error) {
	return s.Slots.ListByDetailer(ctx, detailerID)
}

// ListAvailableSlots returns free, upcoming windows only; this is what the
// customer booking screen renders.
func (s *DefaultDetailerService) ListAvailableSlots(ctx context.Context, detailerID string) ([]models.Slot, error) {
	return s.Slots.ListAvailable(ctx, detailerID, time.Now())
}

// DeleteSlot removes an availability window. A claimed slot must have its
// booking cancelled first; deleting it out from under a booking is refused.
func (s *DefaultDetailerService) DeleteSlot(ctx context.Context, detailerID, slotID string) error {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return utils.NewServiceError(utils.CodeNotFound, "slot not found")
		}
		return err
	}
	if slot.DetailerID != detailerID {
		return utils.NewServiceError(utils.CodeNotFound, "slot not found")
	}
	if slot.Booked() {
		return fmt.Errorf("cannot delete slot %s: currently booked by %s", slotID, slot.BookedBy())
	}
	return s.Slots.Delete(ctx, slotID)
}
