// File: database/repository/catalog/interface.go
package catalogRepo

import (
	"context"

	"autobook/database"
	"autobook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository persists detailer service catalogs. Bookings snapshot the
// service name and price at creation, so edits and deletes here never cascade.
type CatalogRepository interface {
	Create(ctx context.Context, service models.Service) (string, error)
	ListByDetailer(ctx context.Context, detailerID string) ([]models.Service, error)
	GetByName(ctx context.Context, detailerID, name string) (*models.Service, error)
	Update(ctx context.Context, serviceID string, input models.ServiceInput) error
	Delete(ctx context.Context, serviceID string) error
}

type mongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo constructs a new MongoDB CatalogRepository.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoCatalogRepo{
		coll: db.Collection("services"),
	}
}
