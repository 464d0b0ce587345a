// Package mock is an in-process sdk.Client for development and tests. It
// approves every payment unless a failure has been scripted for the
// provider.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Pentakotacharan/shopmate-client/internal/checkout/sdk"
	"github.com/Pentakotacharan/shopmate-client/internal/domain"
)

// Client implements sdk.Client.
type Client struct {
	cashfreeMode string

	mu       sync.Mutex
	failures map[string]error
}

// New creates a mock SDK client that approves everything. cashfreeMode is
// the Cashfree environment the payment surface loads with; anything other
// than sandbox is refused so the mock can never green-light a live payment.
func New(cashfreeMode string) *Client {
	return &Client{
		cashfreeMode: cashfreeMode,
		failures:     make(map[string]error),
	}
}

// FailNext scripts the next confirmation for the provider to fail with err.
func (c *Client) FailNext(provider string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[provider] = err
}

// Confirm completes the payment session, honoring any scripted failure.
func (c *Client) Confirm(ctx context.Context, session domain.PaymentSession) (sdk.Result, error) {
	if err := ctx.Err(); err != nil {
		return sdk.Result{}, err
	}

	if session.Provider == domain.ProviderCashfree && c.cashfreeMode != "sandbox" {
		return sdk.Result{}, fmt.Errorf("cashfree %s mode is not supported by the mock payment surface", c.cashfreeMode)
	}

	c.mu.Lock()
	err, ok := c.failures[session.Provider]
	if ok {
		delete(c.failures, session.Provider)
	}
	c.mu.Unlock()

	if ok {
		return sdk.Result{}, err
	}

	return sdk.Result{Reference: session.Provider + "_" + uuid.New().String()}, nil
}
