// Package cart holds the per-actor shopping cart: an ordered line-item
// collection persisted under the actor's scope key and rebound whenever the
// session's actor changes. One mutex serializes rebinds and mutations, so a
// mutation always lands in the cart of exactly one actor.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/internal/store"
	apperrors "github.com/Pentakotacharan/shopmate-client/pkg/errors"
)

// EventPublisher receives a notification after each successful mutation.
// Publishing is best-effort; failures never affect the cart.
type EventPublisher interface {
	CartUpdated(ctx context.Context, actor domain.Actor, cart domain.Cart)
}

// Store is the cart store.
type Store struct {
	mu    sync.Mutex
	actor domain.Actor
	cart  domain.Cart
	bound bool

	kv     store.KV
	events EventPublisher
	logger *slog.Logger
}

// New creates an unbound cart store. The first Rebind (normally driven by
// the session's restore transition) loads the initial cart; until then the
// cart is empty and nothing is persisted.
func New(kv store.KV, events EventPublisher, logger *slog.Logger) *Store {
	return &Store{
		actor:  domain.Guest(),
		kv:     kv,
		events: events,
		logger: logger,
	}
}

// Rebind switches the cart to the given actor: the current items are saved
// under the previous actor's scope key, then the next actor's persisted cart
// is loaded (empty if absent or unreadable). The whole swap holds the store
// mutex, so no mutation can interleave with it.
func (s *Store) Rebind(ctx context.Context, next domain.Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bound {
		if s.actor.ScopeKey() == next.ScopeKey() {
			s.actor = next
			return
		}
		s.persistLocked(ctx)
	}

	s.actor = next
	s.cart = s.loadLocked(ctx, next.ScopeKey())
	s.bound = true
}

// AddOrIncrement adds the product with the given quantity, or increments the
// existing line by it. delta must be positive.
func (s *Store) AddOrIncrement(ctx context.Context, product domain.Product, delta int) error {
	if delta <= 0 {
		return apperrors.InvalidInput("quantity delta must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cart.FindIndex(product.ID); i >= 0 {
		s.cart.Items[i].Quantity += delta
	} else {
		s.cart.Items = append(s.cart.Items, product.LineItemFor(delta))
	}

	s.persistLocked(ctx)
	s.publishLocked(ctx)
	return nil
}

// Decrement lowers the line's quantity by one, removing the line when it
// would reach zero. Decrementing a product that is not in the cart is a
// logged no-op.
func (s *Store) Decrement(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cart.FindIndex(productID)
	if i < 0 {
		s.logger.DebugContext(ctx, "cart: decrement of absent product ignored",
			slog.String("product_id", productID))
		return
	}

	if s.cart.Items[i].Quantity <= 1 {
		s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
	} else {
		s.cart.Items[i].Quantity--
	}

	s.persistLocked(ctx)
	s.publishLocked(ctx)
}

// Remove drops the line entirely regardless of quantity. Removing an absent
// product is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cart.FindIndex(productID)
	if i < 0 {
		return
	}

	s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)

	s.persistLocked(ctx)
	s.publishLocked(ctx)
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// TotalItems returns the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

// Subtotal returns the cart subtotal in cents.
func (s *Store) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Subtotal()
}

// Actor returns the actor the cart is currently bound to.
func (s *Store) Actor() domain.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actor
}

// persistLocked writes the full cart under the current scope key. A write
// failure is logged and swallowed: the in-memory cart is authoritative and
// only durability across restarts is degraded.
func (s *Store) persistLocked(ctx context.Context) {
	key := s.actor.ScopeKey()

	data, err := json.Marshal(s.cart)
	if err != nil {
		s.logger.ErrorContext(ctx, "cart: marshal failed",
			slog.String("scope", key),
			slog.String("error", err.Error()))
		return
	}

	if err := s.kv.Set(ctx, key, data); err != nil {
		s.logger.WarnContext(ctx, "cart: persist failed",
			slog.String("scope", key),
			slog.String("error", err.Error()))
	}
}

func (s *Store) loadLocked(ctx context.Context, key string) domain.Cart {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			s.logger.WarnContext(ctx, "cart: load failed, starting empty",
				slog.String("scope", key),
				slog.String("error", err.Error()))
		}
		return domain.Cart{}
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		s.logger.WarnContext(ctx, "cart: corrupt persisted cart, starting empty",
			slog.String("scope", key),
			slog.String("error", err.Error()))
		return domain.Cart{}
	}
	return cart
}

func (s *Store) publishLocked(ctx context.Context) {
	if s.events == nil {
		return
	}
	s.events.CartUpdated(ctx, s.actor, s.cart.Clone())
}
