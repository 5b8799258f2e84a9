package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingRepo "autobook/database/repository/booking"
	catalogRepo "autobook/database/repository/catalog"
	slotRepo "autobook/database/repository/slot"
	"autobook/models"
)

// fakeSlotRepo is an in-memory SlotRepository. Claim takes the same
// compare-and-set shape as the Mongo implementation: the free-check and the
// write happen under one lock, so concurrent claims linearize.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot

	claimErr   error
	releaseErr error
	releases   []string
}

func newFakeSlotRepo(slots ...models.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[string]*models.Slot)}
	for i := range slots {
		s := slots[i]
		r.slots[s.ID] = &s
	}
	return r
}

func (r *fakeSlotRepo) Create(ctx context.Context, slot models.Slot) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slot.ID] = &slot
	return slot.ID, nil
}

func (r *fakeSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) ListByDetailer(ctx context.Context, detailerID string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.DetailerID == detailerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ListAvailable(ctx context.Context, detailerID string, after time.Time) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.DetailerID == detailerID && s.Claim == nil && s.StartTime.After(after) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) Claim(ctx context.Context, slotID, customerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claimErr != nil {
		return r.claimErr
	}
	s, ok := r.slots[slotID]
	if !ok {
		return slotRepo.ErrNotFound
	}
	if s.Claim != nil {
		return slotRepo.ErrAlreadyBooked
	}
	s.Claim = &models.SlotClaim{By: customerID, At: time.Now()}
	return nil
}

func (r *fakeSlotRepo) Release(ctx context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.releaseErr != nil {
		return r.releaseErr
	}
	r.releases = append(r.releases, slotID)
	if s, ok := r.slots[slotID]; ok {
		s.Claim = nil
	}
	return nil
}

func (r *fakeSlotRepo) Delete(ctx context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[slotID]; !ok {
		return slotRepo.ErrNotFound
	}
	delete(r.slots, slotID)
	return nil
}

func (r *fakeSlotRepo) ListStaleClaims(ctx context.Context, cutoff time.Time) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.Claim != nil && s.Claim.At.Before(cutoff) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) EnsureIndexes() error { return nil }

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking

	slots     *fakeSlotRepo // for the transactional path
	createErr error
}

func newFakeBookingRepo(slots *fakeSlotRepo) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking), slots: slots}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.bookings[b.ID] = &b
	return nil
}

func (r *fakeBookingRepo) CreateWithClaim(ctx context.Context, b models.Booking) error {
	if err := r.slots.Claim(ctx, b.SlotID, b.CustomerID); err != nil {
		return err
	}
	if err := r.Create(ctx, b); err != nil {
		// Transactional path rolls the claim back.
		_ = r.slots.Release(ctx, b.SlotID)
		return err
	}
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByDetailer(ctx context.Context, detailerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.DetailerID == detailerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	b.Status = status
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	delete(r.bookings, bookingID)
	return b, nil
}

func (r *fakeBookingRepo) CountActiveBySlotID(ctx context.Context, slotID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.SlotID == slotID && b.Active() {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) EnsureIndexes() error { return nil }

// fakeCatalogRepo serves price lookups from a fixed map.
type fakeCatalogRepo struct {
	services map[string]models.Service // keyed by name
	err      error
}

func (r *fakeCatalogRepo) Create(ctx context.Context, s models.Service) (string, error) {
	return s.ID, nil
}

func (r *fakeCatalogRepo) ListByDetailer(ctx context.Context, detailerID string) ([]models.Service, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) GetByName(ctx context.Context, detailerID, name string) (*models.Service, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.services[name]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	return &s, nil
}

func (r *fakeCatalogRepo) Update(ctx context.Context, serviceID string, input models.ServiceInput) error {
	return nil
}

func (r *fakeCatalogRepo) Delete(ctx context.Context, serviceID string) error { return nil }

// fakeGateway records CreatePaymentIntent calls.
type fakeGateway struct {
	secret string
	err    error

	lastAmount   int64
	lastDetailer string
}

func (g *fakeGateway) OnboardDetailer(ctx context.Context, detailerID, email, country string) (string, error) {
	return "https://connect.stripe.example/onboard", nil
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency, detailerID string, metadata map[string]string) (string, error) {
	g.lastAmount = amount
	g.lastDetailer = detailerID
	if g.err != nil {
		return "", g.err
	}
	return g.secret, nil
}

// fakePublisher records release events.
type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []SlotReleaseEvent
}

type SlotReleaseEvent struct {
	BookingID string
	SlotID    string
}

func (p *fakePublisher) PublishSlotRelease(ctx context.Context, bookingID, slotID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, SlotReleaseEvent{BookingID: bookingID, SlotID: slotID})
	return nil
}

// fakeNotifier records pushes; SendPush never fails unless told to.
type fakeNotifier struct {
	mu     sync.Mutex
	err    error
	pushes []string // userID
}

func (n *fakeNotifier) SendPush(ctx context.Context, userID, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.pushes = append(n.pushes, userID)
	return nil
}

var errStorageDown = errors.New("storage unavailable")
