// Package sdk abstracts the provider-hosted payment surface that actually
// collects the card and completes a payment session. The storefront only
// ever hands it session material and waits for an outcome.
package sdk

import (
	"context"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
)

// Result is a completed payment.
type Result struct {
	// Reference is the provider's identifier for the completed payment.
	Reference string `json:"reference"`
}

// Client completes the payment a session describes. Implementations must
// return the provider's error payload unmodified on failure.
type Client interface {
	Confirm(ctx context.Context, session domain.PaymentSession) (Result, error)
}
