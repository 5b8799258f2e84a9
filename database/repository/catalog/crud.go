// File: database/repository/catalog/crud.go
package catalogRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"autobook/models"
)

// ErrNotFound is returned when no catalog entry matches.
var ErrNotFound = errors.New("service not found")

func (r *mongoCatalogRepo) Create(ctx context.Context, service models.Service) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	service.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return "", err
	}
	return service.ID, nil
}

func (r *mongoCatalogRepo) ListByDetailer(ctx context.Context, detailerID string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"detailerId": detailerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *mongoCatalogRepo) GetByName(ctx context.Context, detailerID, name string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	err := r.coll.FindOne(ctx, bson.M{"detailerId": detailerID, "name": name}).Decode(&service)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *mongoCatalogRepo) Update(ctx context.Context, serviceID string, input models.ServiceInput) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"name": input.Name, "price": input.Price}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": serviceID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCatalogRepo) Delete(ctx context.Context, serviceID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": serviceID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
