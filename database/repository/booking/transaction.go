// File: database/repository/booking/transaction.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	slotRepo "autobook/database/repository/slot"
	"autobook/models"
)

// CreateWithClaim inserts the booking and claims its slot inside one Mongo
// multi-document transaction, closing the claimed-but-unbooked window
// entirely. Requires a replica-set deployment; the orchestrator falls back
// to the two-step path when transactions are disabled.
func (r *mongoBookingRepo) CreateWithClaim(ctx context.Context, booking models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{"id": booking.SlotID, "claim": nil}
		update := bson.M{
			"$set": bson.M{
				"claim": models.SlotClaim{By: booking.CustomerID, At: time.Now()},
			},
		}

		res, err := r.slotColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("claim slot failed: %w", err)
		}
		if res.MatchedCount == 0 {
			// Aborting the transaction rolls the booking insert back too.
			if err := r.slotColl.FindOne(sc, bson.M{"id": booking.SlotID}).Err(); err == mongo.ErrNoDocuments {
				return slotRepo.ErrNotFound
			}
			return slotRepo.ErrAlreadyBooked
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
