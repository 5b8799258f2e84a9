// File: database/repository/detailer/interface.go
package detailerRepo

import (
	"context"

	"autobook/database"
	"autobook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// DetailerRepository persists detailer profiles, including the Stripe
// connected-account reference written during onboarding.
type DetailerRepository interface {
	GetByID(ctx context.Context, detailerID string) (*models.Detailer, error)
	Upsert(ctx context.Context, detailer models.Detailer) error
	SetStripeAccountID(ctx context.Context, detailerID, accountID string) error
	GetStripeAccountID(ctx context.Context, detailerID string) (string, error)
}

type mongoDetailerRepo struct {
	coll *mongo.Collection
}

// NewMongoDetailerRepo constructs a new MongoDB DetailerRepository.
func NewMongoDetailerRepo() DetailerRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoDetailerRepo{
		coll: db.Collection("detailers"),
	}
}
