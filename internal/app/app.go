// Package app wires the storefront together: Redis-backed state, the
// backend client, the stores, the checkout coordinator, and the HTTP
// surface.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/Pentakotacharan/shopmate-client/internal/backend"
	"github.com/Pentakotacharan/shopmate-client/internal/cart"
	"github.com/Pentakotacharan/shopmate-client/internal/checkout"
	sdkmock "github.com/Pentakotacharan/shopmate-client/internal/checkout/sdk/mock"
	"github.com/Pentakotacharan/shopmate-client/internal/config"
	"github.com/Pentakotacharan/shopmate-client/internal/domain"
	"github.com/Pentakotacharan/shopmate-client/internal/event"
	handler "github.com/Pentakotacharan/shopmate-client/internal/handler/http"
	"github.com/Pentakotacharan/shopmate-client/internal/session"
	redisstore "github.com/Pentakotacharan/shopmate-client/internal/store/redis"
	"github.com/Pentakotacharan/shopmate-client/pkg/health"
	"github.com/Pentakotacharan/shopmate-client/pkg/httpclient"
	pkgkafka "github.com/Pentakotacharan/shopmate-client/pkg/kafka"
	"github.com/Pentakotacharan/shopmate-client/pkg/tracing"
)

// App wires together all dependencies and runs the storefront client.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	sessions   *session.Store
	httpServer *http.Server

	shutdownTracing func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing.
	traceCfg := tracing.DefaultConfig("shopmate-client")
	traceCfg.Environment = cfg.Environment
	traceCfg.OTLPEndpoint = cfg.OTLPEndpoint
	traceCfg.SampleRate = cfg.TraceSampleRate
	traceCfg.Enabled = cfg.TracingEnabled
	shutdownTracing, err := tracing.InitTracer(ctx, traceCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Redis holds the persisted client state.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	kv := redisstore.New(rdb, cfg.StorePrefix, time.Duration(cfg.CartTTL)*time.Hour)

	// Kafka domain events (optional).
	var producer *pkgkafka.Producer
	var eventSink *event.Producer
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		eventSink = event.NewProducer(producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		eventSink = event.NewProducer(nil, logger)
	}

	// Backend client behind a circuit breaker.
	httpClient := httpclient.New(httpclient.DefaultConfig())
	breaker := httpclient.NewCircuitBreakerClient(httpClient,
		httpclient.DefaultCircuitBreakerConfig("shopmate-backend"), logger)
	backendClient := backend.New(cfg.BackendURL, breaker, logger)

	// Build the dependency graph. The cart rebinds on every session
	// transition, so a sign-in or sign-out atomically swaps the cart scope.
	sessions := session.New(kv, backendClient, logger)
	carts := cart.New(kv, eventSink, logger)
	sessions.Subscribe(func(ctx context.Context, _, next domain.Actor) {
		carts.Rebind(ctx, next)
	})

	coordinator := checkout.New(backendClient, carts, sessions, sdkmock.New(cfg.CashfreeMode), eventSink, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("backend", func(context.Context) error {
		if state := breaker.State(); state == gobreaker.StateOpen {
			return fmt.Errorf("backend circuit breaker is %s", state)
		}
		return nil
	})
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Sessions:  handler.NewSessionHandler(sessions, logger),
		Carts:     handler.NewCartHandler(carts, backendClient, logger),
		Catalog:   handler.NewCatalogHandler(backendClient, logger),
		Checkout:  handler.NewCheckoutHandler(coordinator, logger),
		Session:   sessions,
		Health:    healthHandler,
		Logger:    logger,
		LoginPath: cfg.LoginPath,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		sessions:        sessions,
		httpServer:      httpServer,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Run restores the persisted session, starts the HTTP server, and blocks
// until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	// Settle the session before serving: guarded routes answer Pending only
	// for the short window before this completes.
	actor := a.sessions.Restore(ctx)
	a.logger.Info("session restored",
		slog.String("actor_id", actor.ID),
		slog.Bool("guest", actor.IsGuest()),
	)

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if err := a.shutdownTracing(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
