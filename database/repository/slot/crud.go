// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"autobook/models"
)

// Sentinel errors surfaced to the booking service layer.
var (
	ErrNotFound      = errors.New("slot not found")
	ErrAlreadyBooked = errors.New("slot already booked")
	ErrInvalidRange  = errors.New("slot start must be before end")
)

func (r *mongoSlotRepo) Create(ctx context.Context, slot models.Slot) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if !slot.StartTime.Before(slot.EndTime) {
		return "", ErrInvalidRange
	}
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	slot.Claim = nil
	slot.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return "", err
	}
	return slot.ID, nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mongoSlotRepo) ListByDetailer(ctx context.Context, detailerID string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"detailerId": detailerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// ListAvailable returns unclaimed slots starting after the given instant,
// which is what the booking screen renders.
func (r *mongoSlotRepo) ListAvailable(ctx context.Context, detailerID string, after time.Time) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"detailerId": detailerID,
		"claim":      nil,
		"startTime":  bson.M{"$gt": after},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Claim marks the slot as booked by customerID in a single conditional
// UpdateOne. The claim==nil predicate rides on the very same document update,
// so two racing claims are linearized by Mongo: exactly one matches, the
// other sees MatchedCount zero and gets ErrAlreadyBooked.
func (r *mongoSlotRepo) Claim(ctx context.Context, slotID, customerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": slotID, "claim": nil}
	update := bson.M{
		"$set": bson.M{
			"claim": models.SlotClaim{By: customerID, At: time.Now()},
		},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Lost the race or the slot never existed; look once to tell apart.
		if err := r.coll.FindOne(ctx, bson.M{"id": slotID}).Err(); err == mongo.ErrNoDocuments {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return ErrAlreadyBooked
	}
	return nil
}

// Release clears the claim. It deliberately ignores "nothing matched": the
// reconciliation worker runs under at-least-once delivery and may release a
// slot that is already free.
func (r *mongoSlotRepo) Release(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$unset": bson.M{"claim": ""}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": slotID}, update); err != nil {
		return err
	}
	return nil
}

// Delete removes the slot permanently. Callers must release or cancel any
// booking first; this is not enforced here.
func (r *mongoSlotRepo) Delete(ctx context.Context, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": slotID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListStaleClaims returns slots whose claim predates the cutoff. The sweep
// cross-checks each against active bookings before releasing.
func (r *mongoSlotRepo) ListStaleClaims(ctx context.Context, cutoff time.Time) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"claim":    bson.M{"$ne": nil},
		"claim.at": bson.M{"$lt": cutoff},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
