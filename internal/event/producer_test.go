package event

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/pkg/kafka"
	"github.com/Pentakotacharan/shopmate-client/pkg/logger"
)

type capturingPublisher struct {
	topics []string
	events []*kafka.Event
	err    error
}

func (c *capturingPublisher) Publish(_ context.Context, topic string, event *kafka.Event) error {
	c.topics = append(c.topics, topic)
	c.events = append(c.events, event)
	return c.err
}

func TestCartUpdated(t *testing.T) {
	pub := &capturingPublisher{}
	p := NewProducer(pub, logger.NewWithWriter("test", "error", io.Discard))

	actor := domain.Actor{ID: "u1"}
	cart := domain.Cart{Items: []domain.LineItem{{ProductID: "p1", UnitPrice: 1999, Quantity: 3}}}

	p.CartUpdated(context.Background(), actor, cart)

	require.Len(t, pub.events, 1)
	assert.Equal(t, TopicCart, pub.topics[0])
	assert.Equal(t, TypeCartUpdated, pub.events[0].EventType)
	assert.Equal(t, "u1", pub.events[0].AggregateID)

	var payload cartUpdatedPayload
	require.NoError(t, pub.events[0].UnmarshalData(&payload))
	assert.Equal(t, "cart_u1", payload.Scope)
	assert.Equal(t, 3, payload.TotalItems)
	assert.Equal(t, int64(5997), payload.SubtotalCents)
}

func TestCheckoutConfirmed(t *testing.T) {
	pub := &capturingPublisher{}
	p := NewProducer(pub, logger.NewWithWriter("test", "error", io.Discard))

	p.CheckoutConfirmed(context.Background(), domain.Actor{ID: "u1"}, domain.ProviderRazorpay, 539251, "INR")

	require.Len(t, pub.events, 1)
	assert.Equal(t, TopicCheckout, pub.topics[0])

	var payload checkoutConfirmedPayload
	require.NoError(t, pub.events[0].UnmarshalData(&payload))
	assert.Equal(t, domain.ProviderRazorpay, payload.Provider)
	assert.Equal(t, int64(539251), payload.Amount)
	assert.Equal(t, "INR", payload.Currency)
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("broker down")}
	p := NewProducer(pub, logger.NewWithWriter("test", "error", io.Discard))

	// Must not panic or propagate.
	p.CartUpdated(context.Background(), domain.Guest(), domain.Cart{})
}

func TestNilPublisherIsNoOp(t *testing.T) {
	p := NewProducer(nil, logger.NewWithWriter("test", "error", io.Discard))
	p.CartUpdated(context.Background(), domain.Guest(), domain.Cart{})
	p.CheckoutConfirmed(context.Background(), domain.Guest(), domain.ProviderStripe, 100, "USD")
}
