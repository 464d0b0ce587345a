package checkout

import (
	"context"
	"fmt"

	"github.com/Pentakotacharan/shopmate-client/internal/backend"
	"github.com/Pentakotacharan/shopmate-client/internal/domain"
)

// PaymentAPI is the slice of the backend the coordinator needs.
type PaymentAPI interface {
	StripeConfig(ctx context.Context) (string, error)
	CreatePaymentIntent(ctx context.Context, amountCents int64) (string, error)
	CreateRazorpayOrder(ctx context.Context, amountPaise int64) (backend.RazorpayOrder, error)
	CreateCashfreeOrder(ctx context.Context, amountPaise int64, customerID string) (string, error)
}

// amountFor converts the cart subtotal (cents) into the provider's unit:
// Stripe charges in USD cents; Razorpay and Cashfree in INR paise. The
// paise conversion is the single authoritative rate in domain.
func amountFor(provider string, subtotalCents int64) int64 {
	if provider == domain.ProviderStripe {
		return subtotalCents
	}
	return domain.CentsToPaise(subtotalCents)
}

// currencyFor is the settlement currency matching amountFor's unit.
func currencyFor(provider string) string {
	if provider == domain.ProviderStripe {
		return "USD"
	}
	return "INR"
}

// initSession performs the provider's session-creation round-trip. For
// Stripe the publishable-key fetch is the lazy SDK-load step and happens
// here, on first use, not at startup.
func (c *Coordinator) initSession(ctx context.Context, provider string, amount int64, actor domain.Actor) (domain.PaymentSession, error) {
	switch provider {
	case domain.ProviderStripe:
		key, err := c.api.StripeConfig(ctx)
		if err != nil {
			return domain.PaymentSession{}, fmt.Errorf("stripe config: %w", err)
		}
		secret, err := c.api.CreatePaymentIntent(ctx, amount)
		if err != nil {
			return domain.PaymentSession{}, err
		}
		return domain.PaymentSession{
			Provider:       provider,
			Amount:         amount,
			Currency:       currencyFor(provider),
			ClientSecret:   secret,
			PublishableKey: key,
		}, nil

	case domain.ProviderRazorpay:
		order, err := c.api.CreateRazorpayOrder(ctx, amount)
		if err != nil {
			return domain.PaymentSession{}, err
		}
		currency := order.Currency
		if currency == "" {
			currency = currencyFor(provider)
		}
		return domain.PaymentSession{
			Provider: provider,
			Amount:   amount,
			Currency: currency,
			OrderID:  order.OrderID,
			KeyID:    order.KeyID,
		}, nil

	case domain.ProviderCashfree:
		sessionID, err := c.api.CreateCashfreeOrder(ctx, amount, actor.ID)
		if err != nil {
			return domain.PaymentSession{}, err
		}
		return domain.PaymentSession{
			Provider:         provider,
			Amount:           amount,
			Currency:         currencyFor(provider),
			PaymentSessionID: sessionID,
		}, nil

	default:
		return domain.PaymentSession{}, fmt.Errorf("unknown provider %q", provider)
	}
}
