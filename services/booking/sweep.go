package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ReleaseSlot clears a slot's claim. Safe to call any number of times for
// the same deletion event; releasing a free slot is a no-op.
func (s *DefaultBookingService) ReleaseSlot(ctx context.Context, slotID string) error {
	return s.Slots.Release(ctx, slotID)
}

// ReleaseExpiredClaims frees slots that have sat claimed past the TTL with no
// active booking referencing them. This is the back-stop for the window where
// a claim commits but the booking insert never does (client abandoned the
// request, process died, insert failed). Returns how many slots were freed.
func (s *DefaultBookingService) ReleaseExpiredClaims(ctx context.Context) (int, error) {
	ttl := time.Duration(s.ClaimTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	cutoff := time.Now().Add(-ttl)

	stale, err := s.Slots.ListStaleClaims(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale claims: %w", err)
	}

	released := 0
	for _, slot := range stale {
		count, err := s.Bookings.CountActiveBySlotID(ctx, slot.ID)
		if err != nil {
			s.Logger.Warn("sweep: booking count failed", zap.String("slotId", slot.ID), zap.Error(err))
			continue
		}
		if count > 0 {
			// Claim is backed by a live booking; nothing to reconcile.
			continue
		}
		if err := s.Slots.Release(ctx, slot.ID); err != nil {
			s.Logger.Warn("sweep: release failed", zap.String("slotId", slot.ID), zap.Error(err))
			continue
		}
		s.Logger.Info("sweep: released orphaned claim",
			zap.String("slotId", slot.ID), zap.String("claimedBy", slot.BookedBy()))
		released++
	}
	return released, nil
}
