// Package event publishes the storefront's domain events. Publishing is
// strictly best-effort: a broker outage degrades analytics, never the cart
// or checkout.
package event

import (
	"context"
	"log/slog"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/pkg/kafka"
	"github.com/Pentakotacharan/shopmate-client/pkg/logger"
)

// Topics and event types.
const (
	TopicCart     = "shopmate.cart.events"
	TopicCheckout = "shopmate.checkout.events"

	TypeCartUpdated       = "cart.updated"
	TypeCheckoutConfirmed = "checkout.confirmed"

	source = "shopmate-client"
)

// publisher is satisfied by kafka.Producer.
type publisher interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// Producer emits storefront domain events.
type Producer struct {
	pub    publisher
	logger *slog.Logger
}

// NewProducer creates a domain event producer. A nil pub disables publishing.
func NewProducer(pub publisher, logger *slog.Logger) *Producer {
	return &Producer{pub: pub, logger: logger}
}

type cartUpdatedPayload struct {
	ActorID       string            `json:"actor_id"`
	Scope         string            `json:"scope"`
	TotalItems    int               `json:"total_items"`
	SubtotalCents int64             `json:"subtotal_cents"`
	Items         []domain.LineItem `json:"items"`
}

// CartUpdated reports the cart's state after a mutation.
func (p *Producer) CartUpdated(ctx context.Context, actor domain.Actor, cart domain.Cart) {
	p.emit(ctx, TopicCart, TypeCartUpdated, actor.ID, "cart", cartUpdatedPayload{
		ActorID:       actor.ID,
		Scope:         actor.ScopeKey(),
		TotalItems:    cart.TotalItems(),
		SubtotalCents: cart.Subtotal(),
		Items:         cart.Items,
	})
}

type checkoutConfirmedPayload struct {
	ActorID  string `json:"actor_id"`
	Provider string `json:"provider"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CheckoutConfirmed reports a successful payment confirmation. Amount is in
// the provider's minor unit.
func (p *Producer) CheckoutConfirmed(ctx context.Context, actor domain.Actor, provider string, amount int64, currency string) {
	p.emit(ctx, TopicCheckout, TypeCheckoutConfirmed, actor.ID, "checkout", checkoutConfirmedPayload{
		ActorID:  actor.ID,
		Provider: provider,
		Amount:   amount,
		Currency: currency,
	})
}

func (p *Producer) emit(ctx context.Context, topic, eventType, aggregateID, aggregateType string, payload any) {
	if p.pub == nil {
		return
	}

	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "event: build failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}

	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.pub.Publish(ctx, topic, evt); err != nil {
		p.logger.WarnContext(ctx, "event: publish failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
