package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/account"
	"github.com/stripe/stripe-go/v76/accountlink"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	detailerRepo "autobook/database/repository/detailer"
	"autobook/utils"
)

// OnboardDetailer creates a Stripe Express account for the detailer, persists
// the account id (merge, not overwrite), and returns the hosted onboarding
// link. Re-running before onboarding completes just mints a fresh link for
// the same persisted account.
func (g *StripeGateway) OnboardDetailer(ctx context.Context, detailerID, email, country string) (string, error) {
	if country == "" {
		country = "IE"
	}

	accountID, err := g.Detailers.GetStripeAccountID(ctx, detailerID)
	if err != nil && !errors.Is(err, detailerRepo.ErrNotFound) {
		return "", fmt.Errorf("failed to look up detailer %s: %w", detailerID, err)
	}

	if accountID == "" {
		params := &stripe.AccountParams{
			Type:    stripe.String(string(stripe.AccountTypeExpress)),
			Country: stripe.String(country),
			Email:   stripe.String(email),
			Capabilities: &stripe.AccountCapabilitiesParams{
				CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
					Requested: stripe.Bool(true),
				},
				Transfers: &stripe.AccountCapabilitiesTransfersParams{
					Requested: stripe.Bool(true),
				},
			},
		}
		acct, err := account.New(params)
		if err != nil {
			return "", utils.WrapServiceError(utils.CodeGateway, stripeMessage(err), err)
		}
		accountID = acct.ID

		if err := g.Detailers.SetStripeAccountID(ctx, detailerID, accountID); err != nil {
			return "", fmt.Errorf("failed to persist stripe account for detailer %s: %w", detailerID, err)
		}
		g.Logger.Info("created stripe connected account",
			zap.String("detailerId", detailerID), zap.String("accountId", accountID))
	}

	link, err := accountlink.New(&stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(g.RefreshURL),
		ReturnURL:  stripe.String(g.ReturnURL),
		Type:       stripe.String("account_onboarding"),
	})
	if err != nil {
		return "", utils.WrapServiceError(utils.CodeGateway, stripeMessage(err), err)
	}
	return link.URL, nil
}

// CreatePaymentIntent opens a destination charge: funds settle on the
// detailer's connected account minus the platform fee. Upstream failures are
// never retried here; a retry needs a fresh intent to avoid double charging.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency, detailerID string, metadata map[string]string) (string, error) {
	if amount <= 0 {
		return "", utils.NewServiceError(utils.CodeInvalidAmount, "amount must be a positive integer in minor units")
	}
	if currency == "" {
		currency = g.Currency
	}

	accountID, err := g.Detailers.GetStripeAccountID(ctx, detailerID)
	if err != nil {
		if errors.Is(err, detailerRepo.ErrNotFound) {
			return "", utils.NewServiceError(utils.CodeNotOnboarded, "detailer not onboarded with stripe")
		}
		return "", fmt.Errorf("failed to look up detailer %s: %w", detailerID, err)
	}
	if accountID == "" {
		return "", utils.NewServiceError(utils.CodeNotOnboarded, "detailer not onboarded with stripe")
	}

	params := &stripe.PaymentIntentParams{
		Amount:     stripe.Int64(amount),
		Currency:   stripe.String(currency),
		OnBehalfOf: stripe.String(accountID),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(accountID),
		},
		ApplicationFeeAmount: stripe.Int64(ApplicationFee(amount)),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		g.Logger.Error("stripe payment intent failed",
			zap.String("detailerId", detailerID), zap.Int64("amount", amount), zap.Error(err))
		return "", utils.WrapServiceError(utils.CodeGateway, stripeMessage(err), err)
	}

	return pi.ClientSecret, nil
}

// stripeMessage pulls the human-readable message out of a stripe error so the
// upstream text survives into the API response.
func stripeMessage(err error) string {
	var sErr *stripe.Error
	if errors.As(err, &sErr) && sErr.Msg != "" {
		return sErr.Msg
	}
	return err.Error()
}
