// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"autobook/models"
)

// Sentinel errors surfaced to the booking service layer.
var (
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// allowedTransitions maps a status to the statuses it may move to. Detailers
// confirm and complete; cancellation removes the record instead.
var allowedTransitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (r *mongoBookingRepo) Create(ctx context.Context, booking models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, booking)
	return err
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"customerId": customerID})
}

func (r *mongoBookingRepo) ListByDetailer(ctx context.Context, detailerID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"detailerId": detailerID})
}

func (r *mongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "bookingTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus moves the booking along the lifecycle, enforcing the allowed
// transitions with a conditional update so concurrent transitions cannot
// leapfrog each other.
func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	current, err := r.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(current.Status, status) {
		return nil, ErrInvalidTransition
	}

	filter := bson.M{"id": bookingID, "status": current.Status}
	update := bson.M{"$set": bson.M{"status": status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the booking and returns the deleted document. Mongo delete
// change-events carry only the document key, so the reconciliation event is
// built from this returned copy.
func (r *mongoBookingRepo) Delete(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var deleted models.Booking
	err := r.coll.FindOneAndDelete(ctx, bson.M{"id": bookingID}).Decode(&deleted)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// CountActiveBySlotID counts non-cancelled bookings holding the slot. The
// sweep uses a zero count as license to release a stale claim.
func (r *mongoBookingRepo) CountActiveBySlotID(ctx context.Context, slotID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"slotId": slotID,
		"status": bson.M{"$ne": models.BookingStatusCancelled},
	}
	return r.coll.CountDocuments(ctx, filter)
}
