package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rajmi/ecommerce-backend/internal/config"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
)

// PaymentAuthorizer creates a provider-side payment authorization and hands
// back the client reference the frontend confirms against. The provider's
// wire protocol stays behind this boundary.
type PaymentAuthorizer interface {
	CreateAuthorization(ctx context.Context, amountMinorUnits int64, currency string) (string, error)
}

// StripeAuthorizer implements PaymentAuthorizer with Stripe payment
// intents.
type StripeAuthorizer struct{}

func NewStripeAuthorizer(cfg *config.Config) *StripeAuthorizer {
	stripe.Key = cfg.StripeSecretKey
	return &StripeAuthorizer{}
}

func (a *StripeAuthorizer) CreateAuthorization(ctx context.Context, amountMinorUnits int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
