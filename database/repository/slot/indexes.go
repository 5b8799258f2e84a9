// FILE: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on slot ID; the claim CAS filters on it.
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Availability listing: detailer + free + upcoming.
		{
			Keys:    bson.D{{Key: "detailerId", Value: 1}, {Key: "claim", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("detailer_claim_start_idx"),
		},
		// Stale-claim sweep scans by claim age.
		{
			Keys:    bson.D{{Key: "claim.at", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("claim_at_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
