package models

import "time"

// Detailer is a service provider: owns slots and a service catalog, and
// receives settled funds through a Stripe connected account.
type Detailer struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	Country         string    `bson:"country,omitempty" json:"country,omitempty"`
	StripeAccountID string    `bson:"stripeAccountId,omitempty" json:"stripeAccountId,omitempty"`
	Mobile          bool      `bson:"mobile" json:"mobile"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Service is a catalog entry owned by a detailer. Bookings reference it by
// name only, never by ID.
type Service struct {
	ID         string    `bson:"id" json:"id"`
	DetailerID string    `bson:"detailerId" json:"detailerId"`
	Name       string    `bson:"name" json:"name"`
	Price      float64   `bson:"price" json:"price"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ServiceInput defines the payload for creating or updating a catalog entry.
type ServiceInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required"`
}
