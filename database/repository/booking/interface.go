// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"autobook/database"
	"autobook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists booking records. Delete returns the removed
// document so the caller can publish the reconciliation event with the
// slot reference still attached.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) error
	CreateWithClaim(ctx context.Context, booking models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListByDetailer(ctx context.Context, detailerID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error)
	Delete(ctx context.Context, bookingID string) (*models.Booking, error)
	CountActiveBySlotID(ctx context.Context, slotID string) (int64, error)
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll     *mongo.Collection
	slotColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository. It holds a
// handle on the slots collection as well, for the transactional booking path.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoBookingRepo{
		coll:     db.Collection("bookings"),
		slotColl: db.Collection("slots"),
	}
}
