// File: database/repository/detailer/crud.go
package detailerRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"autobook/models"
)

// ErrNotFound is returned when no detailer matches the given ID.
var ErrNotFound = errors.New("detailer not found")

func (r *mongoDetailerRepo) GetByID(ctx context.Context, detailerID string) (*models.Detailer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var detailer models.Detailer
	err := r.coll.FindOne(ctx, bson.M{"id": detailerID}).Decode(&detailer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &detailer, nil
}

func (r *mongoDetailerRepo) Upsert(ctx context.Context, detailer models.Detailer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": detailer.ID}
	update := bson.M{
		"$set": bson.M{
			"name":      detailer.Name,
			"email":     detailer.Email,
			"country":   detailer.Country,
			"mobile":    detailer.Mobile,
			"updatedAt": time.Now(),
		},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	return err
}

// SetStripeAccountID records the connected account with a merge upsert, so
// repeated onboarding attempts before completion never clobber the profile.
func (r *mongoDetailerRepo) SetStripeAccountID(ctx context.Context, detailerID, accountID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": detailerID}
	update := bson.M{
		"$set": bson.M{
			"stripeAccountId": accountID,
			"updatedAt":       time.Now(),
		},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetStripeAccountID returns "" (not an error) when the detailer exists but
// has not completed onboarding.
func (r *mongoDetailerRepo) GetStripeAccountID(ctx context.Context, detailerID string) (string, error) {
	detailer, err := r.GetByID(ctx, detailerID)
	if err != nil {
		return "", err
	}
	return detailer.StripeAccountID, nil
}
