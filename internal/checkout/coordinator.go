// Package checkout coordinates payment across the supported providers. Each
// provider gets a lazily initialized slot with its own little state machine;
// the cart subtotal at selection time decides the amount, and a slot that is
// already Ready for that amount is reused instead of re-creating the
// provider session.
package checkout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Pentakotacharan/shopmate-client/internal/checkout/sdk"
	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	apperrors "github.com/Pentakotacharan/shopmate-client/pkg/errors"
)

// CartReader exposes the subtotal the coordinator charges for.
type CartReader interface {
	Subtotal() int64
}

// SessionReader exposes the actor paying.
type SessionReader interface {
	Actor() domain.Actor
}

// EventSink receives confirmation events. event.Producer satisfies it.
type EventSink interface {
	CheckoutConfirmed(ctx context.Context, actor domain.Actor, provider string, amount int64, currency string)
}

// slot is one provider's state. seq is the monotonic init token: every
// (re)initialization bumps it, and a response carrying an older token is
// discarded instead of overwriting newer state.
type slot struct {
	status  string
	seq     uint64
	session domain.PaymentSession
	lastErr string
}

// SlotView is a read-only snapshot of a provider slot.
type SlotView struct {
	Provider string                 `json:"provider"`
	Status   string                 `json:"status"`
	Amount   int64                  `json:"amount,omitempty"`
	Currency string                 `json:"currency,omitempty"`
	Session  *domain.PaymentSession `json:"session,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// ConfirmResult is a successful confirmation.
type ConfirmResult struct {
	Provider  string `json:"provider"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// Coordinator is the checkout coordinator.
type Coordinator struct {
	mu         sync.Mutex
	slots      map[string]*slot
	confirming string

	api     PaymentAPI
	cart    CartReader
	session SessionReader
	sdk     sdk.Client
	events  EventSink
	logger  *slog.Logger
}

// New creates a coordinator with all slots Uninitialized.
func New(api PaymentAPI, cart CartReader, session SessionReader, sdkClient sdk.Client, events EventSink, logger *slog.Logger) *Coordinator {
	slots := make(map[string]*slot, len(domain.Providers()))
	for _, p := range domain.Providers() {
		slots[p] = &slot{status: domain.SlotUninitialized}
	}
	return &Coordinator{
		slots:   slots,
		api:     api,
		cart:    cart,
		session: session,
		sdk:     sdkClient,
		events:  events,
		logger:  logger,
	}
}

// Select makes the given provider the active choice, initializing its slot
// if the current cart amount has no Ready session yet. Only the selected
// provider's slot is touched.
func (c *Coordinator) Select(ctx context.Context, provider string) (SlotView, error) {
	if !domain.IsValidProvider(provider) {
		return SlotView{}, apperrors.InvalidInput("unknown payment provider: " + provider)
	}

	subtotal := c.cart.Subtotal()
	if subtotal <= 0 {
		return SlotView{}, apperrors.InvalidInput("cart is empty")
	}
	amount := amountFor(provider, subtotal)
	actor := c.session.Actor()

	c.mu.Lock()
	s := c.slots[provider]

	if s.status == domain.SlotConfirming {
		c.mu.Unlock()
		return SlotView{}, apperrors.Conflict("confirmation in progress for " + provider)
	}

	if s.status == domain.SlotReady && s.session.Amount == amount {
		view := c.viewLocked(provider)
		c.mu.Unlock()
		return view, nil
	}

	s.seq++
	token := s.seq
	s.status = domain.SlotInitializing
	s.lastErr = ""
	c.mu.Unlock()

	session, err := c.initSession(ctx, provider, amount, actor)

	c.mu.Lock()
	defer c.mu.Unlock()

	if s.seq != token {
		// A newer selection superseded this one while the round-trip was in
		// flight; its outcome wins, ours is dropped.
		c.logger.InfoContext(ctx, "checkout: stale init response discarded",
			slog.String("provider", provider),
			slog.Int64("amount", amount))
		return c.viewLocked(provider), nil
	}

	if err != nil {
		s.status = domain.SlotUninitialized
		s.lastErr = err.Error()
		c.logger.WarnContext(ctx, "checkout: session init failed",
			slog.String("provider", provider),
			slog.String("error", err.Error()))
		return c.viewLocked(provider), apperrors.PaymentInit(provider, err.Error())
	}

	s.status = domain.SlotReady
	s.session = session
	c.logger.InfoContext(ctx, "checkout: provider ready",
		slog.String("provider", provider),
		slog.Int64("amount", amount),
		slog.String("currency", session.Currency))
	return c.viewLocked(provider), nil
}

// Confirm completes the payment on the provider's Ready slot. At most one
// confirmation may be in flight across the whole coordinator; a failure
// marks the slot Failed with the provider's error payload kept verbatim,
// and leaves the cart and session untouched.
func (c *Coordinator) Confirm(ctx context.Context, provider string) (ConfirmResult, error) {
	if !domain.IsValidProvider(provider) {
		return ConfirmResult{}, apperrors.InvalidInput("unknown payment provider: " + provider)
	}

	c.mu.Lock()
	if c.confirming != "" {
		p := c.confirming
		c.mu.Unlock()
		return ConfirmResult{}, apperrors.Conflict("confirmation already in progress for " + p)
	}

	s := c.slots[provider]
	if s.status != domain.SlotReady {
		status := s.status
		c.mu.Unlock()
		return ConfirmResult{}, apperrors.InvalidInput("provider " + provider + " is not ready to confirm (status: " + status + ")")
	}

	s.status = domain.SlotConfirming
	c.confirming = provider
	session := s.session
	c.mu.Unlock()

	result, err := c.sdk.Confirm(ctx, session)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirming = ""

	if err != nil {
		s.status = domain.SlotFailed
		s.lastErr = err.Error()
		c.logger.WarnContext(ctx, "checkout: confirmation failed",
			slog.String("provider", provider),
			slog.String("error", err.Error()))
		return ConfirmResult{}, apperrors.PaymentConfirm(err.Error())
	}

	s.status = domain.SlotSucceeded
	c.logger.InfoContext(ctx, "checkout: payment confirmed",
		slog.String("provider", provider),
		slog.String("reference", result.Reference),
		slog.Int64("amount", session.Amount))

	if c.events != nil {
		c.events.CheckoutConfirmed(ctx, c.session.Actor(), provider, session.Amount, session.Currency)
	}

	return ConfirmResult{
		Provider:  provider,
		Reference: result.Reference,
		Amount:    session.Amount,
		Currency:  session.Currency,
	}, nil
}

// View returns snapshots of all provider slots in display order.
func (c *Coordinator) View() []SlotView {
	c.mu.Lock()
	defer c.mu.Unlock()

	views := make([]SlotView, 0, len(domain.Providers()))
	for _, p := range domain.Providers() {
		views = append(views, c.viewLocked(p))
	}
	return views
}

func (c *Coordinator) viewLocked(provider string) SlotView {
	s := c.slots[provider]
	view := SlotView{
		Provider: provider,
		Status:   s.status,
		Error:    s.lastErr,
	}
	if s.status == domain.SlotReady || s.status == domain.SlotConfirming || s.status == domain.SlotSucceeded {
		session := s.session
		view.Amount = session.Amount
		view.Currency = session.Currency
		view.Session = &session
	}
	return view
}
