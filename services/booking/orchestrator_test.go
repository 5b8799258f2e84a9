package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"autobook/models"
	"autobook/utils"
)

func newTestService(slots *fakeSlotRepo, bookings *fakeBookingRepo) (*DefaultBookingService, *fakePublisher, *fakeNotifier) {
	pub := &fakePublisher{}
	notifier := &fakeNotifier{}
	svc := &DefaultBookingService{
		Slots:    slots,
		Bookings: bookings,
		Catalog: &fakeCatalogRepo{services: map[string]models.Service{
			"Full Valet": {ID: "svc-1", DetailerID: "det-1", Name: "Full Valet", Price: 50},
		}},
		Gateway:         &fakeGateway{secret: "pi_123_secret_456"},
		Notifier:        notifier,
		Releases:        pub,
		Logger:          zap.NewNop(),
		ClaimTTLMinutes: 15,
	}
	return svc, pub, notifier
}

func freeSlot(id, detailerID string) models.Slot {
	start := time.Now().Add(24 * time.Hour)
	return models.Slot{
		ID:         id,
		DetailerID: detailerID,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		CreatedAt:  time.Now(),
	}
}

func TestBookSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("claims the slot and creates a pending booking", func(t *testing.T) {
		slots := newFakeSlotRepo(freeSlot("slot-1", "det-1"))
		bookings := newFakeBookingRepo(slots)
		svc, _, _ := newTestService(slots, bookings)

		b, err := svc.BookSlot(ctx, "cust-1", "det-1", "slot-1", "Full Valet")
		if err != nil {
			t.Fatalf("BookSlot failed: %v", err)
		}
		if b.Status != models.BookingStatusPending {
			t.Errorf("status = %q, want %q", b.Status, models.BookingStatusPending)
		}
		if b.Price != 50 {
			t.Errorf("price = %v, want 50 (catalog snapshot)", b.Price)
		}
		if b.SlotID != "slot-1" {
			t.Errorf("slotId = %q, want slot-1", b.SlotID)
		}

		slot, _ := slots.GetByID(ctx, "slot-1")
		if !slot.Booked() || slot.BookedBy() != "cust-1" {
			t.Errorf("slot claim = %+v, want held by cust-1", slot.Claim)
		}
		stored, err := bookings.GetByID(ctx, b.ID)
		if err != nil {
			t.Fatalf("booking was not persisted: %v", err)
		}
		if stored.CustomerID != "cust-1" {
			t.Errorf("stored customerId = %q", stored.CustomerID)
		}
	})

	t.Run("unknown slot yields notFound", func(t *testing.T) {
		slots := newFakeSlotRepo()
		svc, _, _ := newTestService(slots, newFakeBookingRepo(slots))

		_, err := svc.BookSlot(ctx, "cust-1", "det-1", "missing", "Full Valet")
		if !utils.IsCode(err, utils.CodeNotFound) {
			t.Errorf("err = %v, want notFound", err)
		}
	})

	t.Run("slot owned by another detailer yields notFound", func(t *testing.T) {
		slots := newFakeSlotRepo(freeSlot("slot-1", "det-2"))
		svc, _, _ := newTestService(slots, newFakeBookingRepo(slots))

		_, err := svc.BookSlot(ctx, "cust-1", "det-1", "slot-1", "Full Valet")
		if !utils.IsCode(err, utils.CodeNotFound) {
			t.Errorf("err = %v, want notFound", err)
		}
	})

	t.Run("claimed slot yields alreadyBooked", func(t *testing.T) {
		s := freeSlot("slot-1", "det-1")
		s.Claim = &models.SlotClaim{By: "cust-0", At: time.Now()}
		slots := newFakeSlotRepo(s)
		svc, _, _ := newTestService(slots, newFakeBookingRepo(slots))

		_, err := svc.BookSlot(ctx, "cust-1", "det-1", "slot-1", "Full Valet")
		if !utils.IsCode(err, utils.CodeAlreadyBooked) {
			t.Errorf("err = %v, want alreadyBooked", err)
		}
	})

	t.Run("missing catalog entry books at zero price", func(t *testing.T) {
		slots := newFakeSlotRepo(freeSlot("slot-1", "det-1"))
		svc, _, _ := newTestService(slots, newFakeBookingRepo(slots))

		b, err := svc.BookSlot(ctx, "cust-1", "det-1", "slot-1", "Unknown Service")
		if err != nil {
			t.Fatalf("BookSlot failed: %v", err)
		}
		if b.Price != 0 {
			t.Errorf("price = %v, want 0 for uncataloged service", b.Price)
		}
	})

	t.Run("booking insert failure after claim surfaces partialFailure", func(t *testing.T) {
		slots := newFakeSlotRepo(freeSlot("slot-1", "det-1"))
		bookings := newFakeBookingRepo(slots)
		bookings.createErr = errStorageDown
		svc, _, _ := newTestService(slots, bookings)

		_, err := svc.BookSlot(ctx, "cust-1", "det-1", "slot-1", "Full Valet")
		if !utils.IsCode(err, utils.CodePartialFailure) {
			t.Fatalf("err = %v, want partialFailure", err)
		}

		// The claim is stranded until the sweep runs; that is the documented
		// failure window, not a rollback.
		slot, _ := slots.GetByID(ctx, "slot-1")
		if !slot.Booked() {
			t.Error("claim was rolled back; two-step path must leave it for the sweep")
		}
	})

	t.Run("transactional path maps claim races the same way", func(t *testing.T) {
		s := freeSlot("slot-1", "det-1")
		slots := newFakeSlotRepo(s)
		bookings := newFakeBookingRepo(slots)
		svc, _, _ := newTestService(slots, bookings)
		svc.UseTransactions = true

		if _, err := svc.BookSlot(ctx, "cust-1", "det-1", "slot-1", "Full Valet"); err != nil {
			t.Fatalf("first booking failed: %v", err)
		}

		// Re-reading shows Booked, so the pre-check fires; the claim CAS
		// backs it up when the read is stale.
		_, err := svc.BookSlot(ctx, "cust-2", "det-1", "slot-1", "Full Valet")
		if !utils.IsCode(err, utils.CodeAlreadyBooked) {
			t.Errorf("err = %v, want alreadyBooked", err)
		}
	})

	t.Run("notifies the detailer on success", func(t *testing.T) {
		slots := newFakeSlotRepo(freeSlot("slot-1", "det-1"))
		svc, _, notifier := newTestService(slots, newFakeBookingRepo(slots))

		if _, err := svc.BookSlot(ctx, "cust-1", "det-1", "slot-1", "Full Valet"); err != nil {
			t.Fatalf("BookSlot failed: %v", err)
		}
		if len(notifier.pushes) != 1 || notifier.pushes[0] != "det-1" {
			t.Errorf("pushes = %v, want one push to det-1", notifier.pushes)
		}
	})
}

// Forty goroutines race for one slot: exactly one booking may exist at the
// end, and everyone else must lose with alreadyBooked.
func TestBookSlotConcurrent(t *testing.T) {
	ctx := context.Background()
	slots := newFakeSlotRepo(freeSlot("slot-1", "det-1"))
	bookings := newFakeBookingRepo(slots)
	svc, _, _ := newTestService(slots, bookings)

	const racers = 40
	var wg sync.WaitGroup
	results := make(chan error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.BookSlot(ctx, fmt.Sprintf("cust-%d", n), "det-1", "slot-1", "Full Valet")
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case utils.IsCode(err, utils.CodeAlreadyBooked):
			losses++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1", wins)
	}
	if losses != racers-1 {
		t.Errorf("losses = %d, want %d", losses, racers-1)
	}

	count, _ := bookings.CountActiveBySlotID(ctx, "slot-1")
	if count != 1 {
		t.Errorf("active bookings for slot = %d, want 1", count)
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	slots := newFakeSlotRepo(freeSlot("slot-1", "det-1"))
	bookings := newFakeBookingRepo(slots)
	svc, _, notifier := newTestService(slots, bookings)

	b, err := svc.BookSlot(ctx, "cust-1", "det-1", "slot-1", "Full Valet")
	if err != nil {
		t.Fatalf("BookSlot failed: %v", err)
	}
	notifier.pushes = nil

	updated, err := svc.UpdateStatus(ctx, b.ID, models.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.BookingStatusConfirmed {
		t.Errorf("status = %q, want confirmed", updated.Status)
	}
	if len(notifier.pushes) != 1 || notifier.pushes[0] != "cust-1" {
		t.Errorf("pushes = %v, want confirmation push to cust-1", notifier.pushes)
	}

	if _, err := svc.UpdateStatus(ctx, "missing", models.BookingStatusConfirmed); !utils.IsCode(err, utils.CodeNotFound) {
		t.Errorf("err = %v, want notFound", err)
	}
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the booking and publishes the slot release", func(t *testing.T) {
		slots := newFakeSlotRepo(freeSlot("slot-1", "det-1"))
		bookings := newFakeBookingRepo(slots)
		svc, pub, _ := newTestService(slots, bookings)

		b, err := svc.BookSlot(ctx, "cust-1", "det-1", "slot-1", "Full Valet")
		if err != nil {
			t.Fatalf("BookSlot failed: %v", err)
		}

		if err := svc.CancelBooking(ctx, b.ID); err != nil {
			t.Fatalf("CancelBooking failed: %v", err)
		}
		if _, err := bookings.GetByID(ctx, b.ID); err == nil {
			t.Error("booking still exists after cancellation")
		}
		if len(pub.events) != 1 {
			t.Fatalf("release events = %d, want 1", len(pub.events))
		}
		if pub.events[0].SlotID != "slot-1" || pub.events[0].BookingID != b.ID {
			t.Errorf("release event = %+v", pub.events[0])
		}
	})

	t.Run("queue failure does not fail the cancellation", func(t *testing.T) {
		slots := newFakeSlotRepo(freeSlot("slot-1", "det-1"))
		bookings := newFakeBookingRepo(slots)
		svc, pub, _ := newTestService(slots, bookings)
		pub.err = errStorageDown

		b, err := svc.BookSlot(ctx, "cust-1", "det-1", "slot-1", "Full Valet")
		if err != nil {
			t.Fatalf("BookSlot failed: %v", err)
		}
		if err := svc.CancelBooking(ctx, b.ID); err != nil {
			t.Errorf("CancelBooking = %v, want nil despite enqueue failure", err)
		}
		if _, err := bookings.GetByID(ctx, b.ID); err == nil {
			t.Error("booking still exists after cancellation")
		}
	})

	t.Run("unknown booking yields notFound", func(t *testing.T) {
		slots := newFakeSlotRepo()
		svc, _, _ := newTestService(slots, newFakeBookingRepo(slots))
		if err := svc.CancelBooking(ctx, "missing"); !utils.IsCode(err, utils.CodeNotFound) {
			t.Errorf("err = %v, want notFound", err)
		}
	})
}

func TestPayAndConfirm(t *testing.T) {
	ctx := context.Background()
	slots := newFakeSlotRepo()
	svc, _, _ := newTestService(slots, newFakeBookingRepo(slots))
	gw := svc.Gateway.(*fakeGateway)

	resp, err := svc.PayAndConfirm(ctx, models.PaymentIntentRequest{
		Amount:   5000,
		Currency: "eur",
		Metadata: map[string]string{"detailerId": "det-1", "customerId": "cust-1"},
	})
	if err != nil {
		t.Fatalf("PayAndConfirm failed: %v", err)
	}
	if resp.ClientSecret != "pi_123_secret_456" {
		t.Errorf("clientSecret = %q", resp.ClientSecret)
	}
	if gw.lastAmount != 5000 || gw.lastDetailer != "det-1" {
		t.Errorf("gateway call = amount %d detailer %q", gw.lastAmount, gw.lastDetailer)
	}

	_, err = svc.PayAndConfirm(ctx, models.PaymentIntentRequest{Amount: 5000, Metadata: map[string]string{}})
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Errorf("err = %v, want notFound for missing detailerId", err)
	}
}
