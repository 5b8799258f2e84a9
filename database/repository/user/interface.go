// File: database/repository/user/interface.go
package userRepo

import (
	"context"

	"autobook/database"
	"autobook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository persists account records. The notification service resolves
// push tokens through it.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetFCMToken(ctx context.Context, userID, token string) error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoUserRepo{
		coll: db.Collection("users"),
	}
}
