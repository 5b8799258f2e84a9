package payment

import (
	"context"

	detailerRepo "autobook/database/repository/detailer"

	"go.uber.org/zap"
)

// PaymentGateway abstracts the payment provider so the booking workflow and
// tests never touch Stripe directly.
type PaymentGateway interface {
	// OnboardDetailer creates (or reuses) a connected account for the
	// detailer and returns a hosted onboarding URL.
	OnboardDetailer(ctx context.Context, detailerID, email, country string) (string, error)
	// CreatePaymentIntent opens an intent routed to the detailer's connected
	// account with the platform fee withheld, returning the client secret.
	CreatePaymentIntent(ctx context.Context, amount int64, currency, detailerID string, metadata map[string]string) (string, error)
}

// StripeGateway is the production PaymentGateway backed by stripe-go.
type StripeGateway struct {
	Detailers  detailerRepo.DetailerRepository
	Logger     *zap.Logger
	RefreshURL string
	ReturnURL  string
	Currency   string
}

// NewStripeGateway constructs the production gateway.
func NewStripeGateway(repo detailerRepo.DetailerRepository, logger *zap.Logger, refreshURL, returnURL, currency string) *StripeGateway {
	return &StripeGateway{
		Detailers:  repo,
		Logger:     logger,
		RefreshURL: refreshURL,
		ReturnURL:  returnURL,
		Currency:   currency,
	}
}
