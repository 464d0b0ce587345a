package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
)

func TestConfirmApprovesSandboxSessions(t *testing.T) {
	c := New("sandbox")

	res, err := c.Confirm(context.Background(), domain.PaymentSession{Provider: domain.ProviderCashfree})
	require.NoError(t, err)
	assert.Contains(t, res.Reference, domain.ProviderCashfree+"_")
}

func TestConfirmRefusesProductionCashfree(t *testing.T) {
	c := New("production")

	_, err := c.Confirm(context.Background(), domain.PaymentSession{Provider: domain.ProviderCashfree})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "production")

	// The Cashfree environment does not affect the other providers.
	_, err = c.Confirm(context.Background(), domain.PaymentSession{Provider: domain.ProviderStripe})
	assert.NoError(t, err)
}

func TestFailNextIsOneShot(t *testing.T) {
	c := New("sandbox")
	c.FailNext(domain.ProviderStripe, errors.New("card_declined"))

	_, err := c.Confirm(context.Background(), domain.PaymentSession{Provider: domain.ProviderStripe})
	require.EqualError(t, err, "card_declined")

	_, err = c.Confirm(context.Background(), domain.PaymentSession{Provider: domain.ProviderStripe})
	assert.NoError(t, err)
}
