// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"time"

	"autobook/database"
	"autobook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotRepository persists detailer availability windows. Claim is the only
// concurrency-critical operation in the system: it must be a single atomic
// conditional update at the storage layer, never read-then-write.
type SlotRepository interface {
	Create(ctx context.Context, slot models.Slot) (string, error)
	GetByID(ctx context.Context, slotID string) (*models.Slot, error)
	ListByDetailer(ctx context.Context, detailerID string) ([]models.Slot, error)
	ListAvailable(ctx context.Context, detailerID string, after time.Time) ([]models.Slot, error)
	Claim(ctx context.Context, slotID, customerID string) error
	Release(ctx context.Context, slotID string) error
	Delete(ctx context.Context, slotID string) error
	ListStaleClaims(ctx context.Context, cutoff time.Time) ([]models.Slot, error)
	EnsureIndexes() error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoSlotRepo{
		coll: db.Collection("slots"),
	}
}
