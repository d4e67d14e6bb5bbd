package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fulfillment-ledger/config"
	httpHandler "fulfillment-ledger/internal/adapter/http/handler"
	"fulfillment-ledger/internal/adapter/storage/memory"
	pgStorage "fulfillment-ledger/internal/adapter/storage/postgres"
	redisStorage "fulfillment-ledger/internal/adapter/storage/redis"
	"fulfillment-ledger/internal/adapter/upstream"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/internal/service"
	"fulfillment-ledger/pkg/logger"
	"fulfillment-ledger/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

// repositories is the storage backend selected by storage.driver.
type repositories struct {
	wallets      ports.BalanceStore
	ledger       ports.LedgerJournal
	orders       ports.OrderCostRepository
	fulfillments ports.FulfillmentRepository
	audit        ports.AuditRepository
	transactor   ports.DBTransactor
	health       ports.HealthChecker
	close        func()
}

func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(os.Getenv("MFL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret is required")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting Fulfillment Ledger")

	ctx := context.Background()

	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer repos.close()

	healthCheckers := []ports.HealthChecker{repos.health}

	// Redis backs the idempotency cache and rate limiting; both are optional.
	var (
		cache   ports.IdempotencyCache
		limiter ports.RateLimiter
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		cache = redisStorage.NewIdempotencyCache(rdb)
		limiter = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled: no idempotency cache, no rate limiting")
	}

	// Metrics
	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(reg)
		gatherer = reg
	}

	var source ports.OrderSource
	if cfg.Upstream.BaseURL != "" {
		source = upstream.NewOrderSource(cfg.Upstream.BaseURL, cfg.Upstream.Token, cfg.Upstream.Timeout, nil, logger.Component(log, "upstream"))
	} else {
		log.Warn().Msg("upstream.base_url not set: only locally known orders can be synced")
	}

	// Initialize core services
	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	notifier := service.NewWebhookNotifier(
		cfg.Notification.WebhookURL,
		cfg.Notification.Secret,
		sigSvc,
		&http.Client{Timeout: cfg.Notification.Timeout},
		cfg.Notification.RetryIntervals,
		logger.Component(log, "notifier"),
	)
	auditSvc := service.NewAuditService(repos.audit, logger.Component(log, "audit"))

	// Initialize business services
	orderCostSvc := service.NewOrderCostService(repos.orders, source, auditSvc, logger.Component(log, "order_costs"))
	submissionSvc := service.NewSubmissionService(service.SubmissionDeps{
		OrderCosts:   orderCostSvc,
		OrderRepo:    repos.orders,
		Wallets:      repos.wallets,
		Ledger:       repos.ledger,
		Fulfillments: repos.fulfillments,
		Transactor:   repos.transactor,
		Cache:        cache,
		Notifier:     notifier,
		Audit:        auditSvc,
		Metrics:      m,
		CacheTTL:     cfg.Fulfillment.IdempotencyTTL,
		Logger:       logger.Component(log, "submission"),
	})
	statusSvc := service.NewStatusService(service.StatusDeps{
		Fulfillments:    repos.fulfillments,
		OrderRepo:       repos.orders,
		Transactor:      repos.transactor,
		Notifier:        notifier,
		Audit:           auditSvc,
		Metrics:         m,
		Retries:         cfg.Fulfillment.TransitionRetries,
		BulkConcurrency: cfg.Fulfillment.BulkConcurrency,
		BulkMaxItems:    cfg.Fulfillment.BulkMaxItems,
		Logger:          logger.Component(log, "status"),
	})
	fulfillmentSvc := service.NewFulfillmentService(repos.fulfillments, auditSvc, logger.Component(log, "fulfillments"))
	walletSvc := service.NewWalletService(repos.wallets, repos.ledger, repos.transactor, auditSvc, logger.Component(log, "wallet"))

	// Setup Gin router with all routes
	gin.SetMode(cfg.Server.Mode)
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Submissions:    submissionSvc,
		OrderCosts:     orderCostSvc,
		Status:         statusSvc,
		Fulfillments:   fulfillmentSvc,
		Wallets:        walletSvc,
		TokenSvc:       tokenSvc,
		RateLimiter:    limiter,
		HealthCheckers: healthCheckers,
		Metrics:        m,
		Gatherer:       gatherer,
		MetricsPath:    cfg.Metrics.Path,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Logger:         logger.Component(log, "http"),
	})

	// HTTP Server with graceful shutdown
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openStorage connects the configured backend. The memory driver keeps
// everything in process and is meant for local runs and demos.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		store := memory.New()
		log.Warn().Msg("Using in-memory storage: data is lost on restart")
		return &repositories{
			wallets:      store.Wallets(),
			ledger:       store.Ledger(),
			orders:       store.OrderCosts(),
			fulfillments: store.Fulfillments(),
			audit:        store.Audit(),
			transactor:   store,
			health:       store,
			close:        func() {},
		}, nil
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := pgStorage.Migrate(ctx, pool, log, "up"); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &repositories{
		wallets:      pgStorage.NewWalletRepo(pool),
		ledger:       pgStorage.NewLedgerRepo(pool),
		orders:       pgStorage.NewOrderCostRepo(pool),
		fulfillments: pgStorage.NewFulfillmentRepo(pool),
		audit:        pgStorage.NewAuditRepo(pool),
		transactor:   pgStorage.NewTransactor(pool),
		health:       pgStorage.NewHealthCheck(pool),
		close:        pool.Close,
	}, nil
}
