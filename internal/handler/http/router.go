package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/internal/guard"
	"github.com/Pentakotacharan/shopmate-client/pkg/health"
	"github.com/Pentakotacharan/shopmate-client/pkg/logger"
	"github.com/Pentakotacharan/shopmate-client/pkg/middleware"
)

// SessionReader is the live session as the router sees it: the checkout
// guard keys off State, and request logs carry the current actor.
// session.Store satisfies it.
type SessionReader interface {
	guard.StateReader
	Actor() domain.Actor
}

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Sessions  *SessionHandler
	Carts     *CartHandler
	Catalog   *CatalogHandler
	Checkout  *CheckoutHandler
	Session   SessionReader
	Health    *health.Handler
	Logger    *slog.Logger
	LoginPath string
}

// NewRouter creates a chi router with all storefront routes registered. The
// checkout group sits behind the route guard; everything else is open.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware. Tracing and the actor stamp run before the request
	// logger so log lines pick up trace IDs and the signed-in actor.
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Tracing("storefront"))
	r.Use(actorContext(deps.Session))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.CORS)

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/session", deps.Sessions.Get)
		r.Post("/session/login", deps.Sessions.Login)
		r.Post("/session/register", deps.Sessions.Register)
		r.Delete("/session", deps.Sessions.Logout)

		r.Get("/cart", deps.Carts.Get)
		r.Post("/cart/items", deps.Carts.AddItem)
		r.Post("/cart/items/{productID}/decrement", deps.Carts.Decrement)
		r.Delete("/cart/items/{productID}", deps.Carts.RemoveItem)

		r.Get("/products", deps.Catalog.List)
		r.Get("/products/{productID}", deps.Catalog.Get)

		r.Route("/checkout", func(r chi.Router) {
			r.Use(guard.Middleware(deps.Session, deps.LoginPath))

			r.Get("/", deps.Checkout.View)
			r.Post("/provider", deps.Checkout.SelectProvider)
			r.Post("/confirm", deps.Checkout.Confirm)
		})
	})

	return r
}

// actorContext stamps the signed-in actor onto the request context so
// downstream log lines carry actor_id.
func actorContext(session SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if actor := session.Actor(); !actor.IsGuest() {
				r = r.WithContext(logger.WithActorID(r.Context(), actor.ID))
			}
			next.ServeHTTP(w, r)
		})
	}
}
