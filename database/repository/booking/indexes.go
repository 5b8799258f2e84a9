// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "bookingTime", Value: 1}},
			Options: options.Index().SetName("customer_time_idx"),
		},
		{
			Keys:    bson.D{{Key: "detailerId", Value: 1}, {Key: "bookingTime", Value: 1}},
			Options: options.Index().SetName("detailer_time_idx"),
		},
		// Sweep and invariant checks look bookings up by slot.
		{
			Keys:    bson.D{{Key: "slotId", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("slot_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
