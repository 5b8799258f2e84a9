package payment

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"autobook/utils"
)

// The amount check fires before any detailer lookup or Stripe call, so a
// bare gateway is enough here.
func TestCreatePaymentIntentRejectsNonPositiveAmounts(t *testing.T) {
	g := NewStripeGateway(nil, zap.NewNop(), "", "", "eur")

	for _, amount := range []int64{0, -5} {
		_, err := g.CreatePaymentIntent(context.Background(), amount, "eur", "det-1", nil)
		if !utils.IsCode(err, utils.CodeInvalidAmount) {
			t.Errorf("CreatePaymentIntent(%d) err = %v, want invalidAmount", amount, err)
		}
	}
}
